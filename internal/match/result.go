package match

import (
	"time"

	"github.com/lox/headsup/internal/history"
)

// SeatResult is one agent's outcome.
type SeatResult struct {
	Name  string
	Stack int
	// Finish is the tournament finishing position; 0 in cash games.
	Finish int
	// GainLoss is the cash game net result.
	GainLoss int
	Timeouts int
	// Dump is the agent's log of the exchange.
	Dump string
}

// Result describes a played match.
type Result struct {
	ID       string
	Game     string
	Hands    int
	Winner   string
	Seats    []SeatResult
	Started  time.Time
	Finished time.Time
}

// Duration returns how long the match ran.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Summary converts the result for a history sink.
func (r *Result) Summary() history.Summary {
	standings := make([]history.Standing, len(r.Seats))
	for i, s := range r.Seats {
		standings[i] = history.Standing{
			Name:     s.Name,
			Stack:    s.Stack,
			Finish:   s.Finish,
			GainLoss: s.GainLoss,
			Timeouts: s.Timeouts,
		}
	}
	return history.Summary{
		MatchID:   r.ID,
		Game:      r.Game,
		Hands:     r.Hands,
		Winner:    r.Winner,
		Standings: standings,
		Started:   r.Started,
		Finished:  r.Finished,
	}
}
