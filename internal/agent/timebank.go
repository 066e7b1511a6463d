package agent

import (
	"sync"
	"time"
)

// TimeBank is an agent's response time budget. It starts full; every
// request may use all of it, and afterwards the time used is taken out and
// a fixed allowance per move is paid back, up to the cap.
type TimeBank struct {
	mu        sync.Mutex
	remaining time.Duration
	perMove   time.Duration
	limit     time.Duration
}

// NewTimeBank creates a full bank.
func NewTimeBank(limit, perMove time.Duration) *TimeBank {
	return &TimeBank{remaining: limit, perMove: perMove, limit: limit}
}

// Remaining returns the time available for the next request.
func (b *TimeBank) Remaining() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Spend charges the time a request took and pays back the per-move
// allowance.
func (b *TimeBank) Spend(elapsed time.Duration) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remaining = max(b.remaining-elapsed, 0)
	b.remaining = min(b.remaining+b.perMove, b.limit)
	return b.remaining
}
