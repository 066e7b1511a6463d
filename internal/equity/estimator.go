// Package equity estimates each seat's chance of winning a hand by sampling
// board completions.
package equity

import (
	"strconv"

	"github.com/lox/headsup/poker"
)

// DefaultTrials is the number of sampled boards per estimate.
const DefaultTrials = 1000

// EvalFunc scores a hole hand against a complete five-card board.
type EvalFunc func(hole, board []poker.Card) poker.Strength

// Estimator runs Monte Carlo equity estimates.
type Estimator struct {
	trials int
	eval   EvalFunc
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithTrials sets the number of sampled boards.
func WithTrials(n int) Option {
	return func(e *Estimator) {
		if n > 0 {
			e.trials = n
		}
	}
}

// WithEvaluator sets how hands are scored. The default scores the best
// seven-card hold'em hand.
func WithEvaluator(eval EvalFunc) Option {
	return func(e *Estimator) {
		e.eval = eval
	}
}

// New creates an estimator.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		trials: DefaultTrials,
		eval:   holdem,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func holdem(hole, board []poker.Card) poker.Strength {
	return poker.Eval7(poker.NewHand(hole...) | poker.NewHand(board...))
}

// Estimate returns every seat's win share in permille (percent times ten).
// Each trial completes the board from the deck, and every live seat tied
// for the best hand is credited with a win. The deck is returned to its
// starting cards after every trial. A complete board needs one trial.
// Seats that are not live get 0.
func (e *Estimator) Estimate(deck *poker.Deck, board []poker.Card, hands [][]poker.Card, live []bool) []int {
	return Permille(e.Tally(deck, board, hands, live), live)
}

// Tally returns the raw win count of every seat over the trials.
func (e *Estimator) Tally(deck *poker.Deck, board []poker.Card, hands [][]poker.Card, live []bool) []int {
	wins := make([]int, len(hands))
	trials := e.trials
	if len(board) >= 5 {
		trials = 1
	}

	full := make([]poker.Card, 0, 5)
	deck.Save()
	for range trials {
		full = append(full[:0], board...)
		full = append(full, deck.Deal(5-len(board))...)
		e.credit(wins, full, hands, live)
		deck.Restore()
	}
	return wins
}

// credit adds a win for every live seat holding the best hand on a complete
// board.
func (e *Estimator) credit(wins []int, board []poker.Card, hands [][]poker.Card, live []bool) {
	var best poker.Strength
	var winners []int
	for seat, hole := range hands {
		if !live[seat] {
			continue
		}
		switch s := e.eval(hole, board); {
		case winners == nil || s > best:
			best = s
			winners = append(winners[:0], seat)
		case s == best:
			winners = append(winners, seat)
		}
	}
	for _, seat := range winners {
		wins[seat]++
	}
}

// Permille converts win counts to rounded shares of the live seats' total.
func Permille(wins []int, live []bool) []int {
	sum := 0
	for seat, w := range wins {
		if live[seat] {
			sum += w
		}
	}
	out := make([]int, len(wins))
	if sum == 0 {
		return out
	}
	for seat, w := range wins {
		if live[seat] {
			// round half up
			out[seat] = (2000*w + sum) / (2 * sum)
		}
	}
	return out
}

// FormatPercent renders a permille value as a percentage with one decimal,
// such as "29.0" or "0.5".
func FormatPercent(permille int) string {
	s := strconv.Itoa(permille)
	if permille < 10 {
		s = "0" + s
	}
	return s[:len(s)-1] + "." + s[len(s)-1:]
}
