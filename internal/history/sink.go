// Package history stores the hand histories and final standings of matches.
package history

import (
	"context"
	"errors"
	"time"
)

// Hand is the recorded history of one hand.
type Hand struct {
	MatchID string
	Number  int
	Game    string
	Text    string
	Played  time.Time
}

// Standing is one agent's final line in a match summary.
type Standing struct {
	Name     string
	Stack    int
	Finish   int
	GainLoss int
	Timeouts int
}

// Summary describes a finished match.
type Summary struct {
	MatchID   string
	Game      string
	Hands     int
	Winner    string
	Standings []Standing
	Started   time.Time
	Finished  time.Time
}

// Sink receives hand histories as a match is played.
type Sink interface {
	WriteHand(ctx context.Context, h Hand) error
	WriteSummary(ctx context.Context, s Summary) error
	Close() error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteHand(context.Context, Hand) error       { return nil }
func (discard) WriteSummary(context.Context, Summary) error { return nil }
func (discard) Close() error                                { return nil }

// Multi fans every write out to each of the sinks.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) WriteHand(ctx context.Context, h Hand) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.WriteHand(ctx, h))
	}
	return errors.Join(errs...)
}

func (m multi) WriteSummary(ctx context.Context, s Summary) error {
	var errs []error
	for _, sink := range m {
		errs = append(errs, sink.WriteSummary(ctx, s))
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
