// Package agent connects the match engine to the programs that play it.
// Every transport delivers lines the same way: a reader goroutine publishes
// each line the agent writes into a single-slot channel and the engine
// takes the most recent one when it asks for an action.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

var (
	// ErrClosed is returned when writing to a closed channel.
	ErrClosed = errors.New("agent: channel closed")
	// ErrSkipped is returned when writing to an agent that has been
	// dropped for timing out too often.
	ErrSkipped = errors.New("agent: skipped after too many timeouts")
)

// Channel is the engine's view of one agent.
type Channel interface {
	// Send delivers one line to the agent.
	Send(line string) error
	// RequestAction asks the agent named name to act and waits up to its
	// time bank. It returns the agent's latest line, or "" when nothing
	// usable arrived, along with the time taken. A request abandoned
	// because ctx ended is not counted as a timeout.
	RequestAction(ctx context.Context, name string) (string, time.Duration)
	// Close releases the agent. It is safe to call more than once.
	Close() error
}

// Dumper exposes the per-agent log of the exchange.
type Dumper interface {
	Dump() string
}

// Config holds the timing rules shared by every transport.
type Config struct {
	TimePerMove time.Duration
	TimeBank    time.Duration
	MaxTimeouts int
	Clock       quartz.Clock
	Logger      zerolog.Logger
}

// DefaultConfig returns the standard timing: a 10 second bank refilled by
// 500ms per move, and two timeouts tolerated.
func DefaultConfig() Config {
	return Config{
		TimePerMove: 500 * time.Millisecond,
		TimeBank:    10 * time.Second,
		MaxTimeouts: 2,
		Clock:       quartz.NewReal(),
		Logger:      zerolog.Nop(),
	}
}

// maxBuffered caps the characters accepted from one agent; output past it
// is dropped.
const maxBuffered = 1_000_000

// line is the transport independent half of an agent: the response slot,
// the time bank, timeout accounting and the dump.
type line struct {
	cfg    Config
	logger zerolog.Logger
	slot   *Slot
	bank   *TimeBank

	write    func(string) error
	shutdown func() error

	mu       sync.Mutex
	dump     strings.Builder
	buffered int
	timeouts int
	skipped  bool

	closeOnce sync.Once
	closeErr  error
}

func newLine(cfg Config, logger zerolog.Logger, write func(string) error, shutdown func() error) *line {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &line{
		cfg:      cfg,
		logger:   logger,
		slot:     NewSlot(cfg.Clock),
		bank:     NewTimeBank(cfg.TimeBank, cfg.TimePerMove),
		write:    write,
		shutdown: shutdown,
	}
}

// accept is called by the reader goroutine for every line the agent writes.
func (l *line) accept(text string) {
	text = strings.TrimRight(text, "\r\n")
	if strings.Contains(text, "VM warning") {
		return
	}
	l.mu.Lock()
	if l.buffered >= maxBuffered {
		l.mu.Unlock()
		return
	}
	l.buffered += len(text) + 1
	l.mu.Unlock()
	l.slot.Put(text)
}

// readerDone is called when the agent's output ends.
func (l *line) readerDone() {
	l.slot.Close()
}

func (l *line) note(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(&l.dump, format, args...)
	l.dump.WriteByte('\n')
}

// Note appends an engine remark to the agent's dump.
func (l *line) Note(text string) {
	l.note("Engine says: %q", text)
}

// Dump returns everything sent to and received from the agent.
func (l *line) Dump() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dump.String()
}

func (l *line) isSkipped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.skipped
}

// Send writes one line to the agent and records it in the dump.
func (l *line) Send(text string) error {
	if l.isSkipped() {
		return ErrSkipped
	}
	l.note("%s", text)
	if err := l.write(text); err != nil {
		l.logger.Debug().Err(err).Msg("Failed to write to agent")
		return err
	}
	return nil
}

// Bank returns the time currently available to the agent.
func (l *line) Bank() time.Duration {
	return l.bank.Remaining()
}

// RequestAction implements Channel.
func (l *line) RequestAction(ctx context.Context, name string) (string, time.Duration) {
	if l.isSkipped() {
		l.note("Maximum number (%d) of time-outs reached: skipping all moves.", l.cfg.MaxTimeouts)
		return "", 0
	}

	budget := l.bank.Remaining()
	start := l.cfg.Clock.Now()
	if err := l.Send(fmt.Sprintf("Action %s %d", name, budget.Milliseconds())); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to send action request")
	}

	response, err := l.slot.Receive(ctx, budget)
	elapsed := l.cfg.Clock.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		// the engine gave up waiting; the agent is not to blame
		l.logger.Debug().Err(err).Msg("Action request cancelled")
		return "", elapsed
	}
	l.bank.Spend(elapsed)

	if err != nil {
		l.timedOut(budget, err)
		return "", elapsed
	}
	if strings.EqualFold(response, "No moves") {
		l.note("Output from your bot: %q", response)
		return "", elapsed
	}
	l.note("Output from your bot: %q", response)
	return response, elapsed
}

func (l *line) timedOut(budget time.Duration, cause error) {
	l.note("Response timed out (%dms), let your bot return 'No moves' instead of nothing or make it faster.", budget.Milliseconds())
	l.note("Output from your bot: null")

	l.mu.Lock()
	l.timeouts++
	skip := l.timeouts > l.cfg.MaxTimeouts
	if skip {
		l.skipped = true
	}
	timeouts := l.timeouts
	l.mu.Unlock()

	l.logger.Warn().
		Err(cause).
		Int("timeouts", timeouts).
		Dur("budget", budget).
		Msg("Agent timed out")

	if skip {
		l.logger.Warn().Msg("Agent exceeded the timeout limit, skipping all further moves")
		_ = l.Close()
	}
}

// Timeouts returns how many requests went unanswered.
func (l *line) Timeouts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timeouts
}

// Close implements Channel.
func (l *line) Close() error {
	l.closeOnce.Do(func() {
		l.slot.Close()
		if l.shutdown != nil {
			l.closeErr = l.shutdown()
		}
	})
	return l.closeErr
}
