package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// ErrTimeout is returned by Slot.Receive when no value arrives in time.
var ErrTimeout = errors.New("agent: response timed out")

// Slot holds at most one pending line. A Put replaces any unread line, so a
// receiver always sees the most recent one.
type Slot struct {
	ch     chan string
	clock  quartz.Clock
	closed chan struct{}
	once   sync.Once
}

// NewSlot creates an empty slot that times out on the given clock.
func NewSlot(clock quartz.Clock) *Slot {
	return &Slot{
		ch:     make(chan string, 1),
		clock:  clock,
		closed: make(chan struct{}),
	}
}

// Put stores a line, discarding any line that has not been received yet.
// There must be a single writer.
func (s *Slot) Put(line string) {
	for {
		select {
		case s.ch <- line:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Receive waits for the next line. It returns ErrTimeout once timeout has
// passed on the slot's clock, ErrClosed when the slot is closed and empty,
// or the context's error.
func (s *Slot) Receive(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case line := <-s.ch:
		return line, nil
	default:
	}

	expired := make(chan struct{})
	timer := s.clock.AfterFunc(timeout, func() {
		close(expired)
	}, "slot", "receive")
	defer timer.Stop()

	select {
	case line := <-s.ch:
		return line, nil
	case <-expired:
		return "", ErrTimeout
	case <-s.closed:
		select {
		case line := <-s.ch:
			return line, nil
		default:
			return "", ErrClosed
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close marks the slot as finished; pending lines can still be received.
func (s *Slot) Close() {
	s.once.Do(func() { close(s.closed) })
}
