// Package match plays a match between agents: it deals the hands, relays
// the protocol, asks agents for their moves and records the history.
package match

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/headsup/internal/agent"
	"github.com/lox/headsup/internal/equity"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/history"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// Seat is an agent taking part in a match.
type Seat struct {
	Name    string
	Channel agent.Channel
}

// Runner plays one match. It is not safe for concurrent use.
type Runner struct {
	id        string
	settings  Settings
	state     *game.State
	seats     []Seat
	rng       *rand.Rand
	estimator *equity.Estimator
	sink      history.Sink
	clock     quartz.Clock
	logger    zerolog.Logger

	started   time.Time
	announced bool
}

// Option configures a Runner.
type Option func(*options)

type options struct {
	id     string
	sink   history.Sink
	clock  quartz.Clock
	logger zerolog.Logger
	state  []game.Option
}

// WithID sets the match ID instead of generating one.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithSink sends hand histories to sink.
func WithSink(sink history.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithClock sets the clock used for match timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStateOptions passes options through to the table state, such as
// uneven starting stacks.
func WithStateOptions(opts ...game.Option) Option {
	return func(o *options) { o.state = append(o.state, opts...) }
}

// New prepares a match between the seats in the given order.
func New(settings Settings, seats []Seat, opts ...Option) (*Runner, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if len(seats) < 2 {
		return nil, fmt.Errorf("at least two seats are required, got %d", len(seats))
	}

	o := &options{
		id:     uuid.NewString(),
		sink:   history.Discard,
		clock:  quartz.NewReal(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	v := settings.Variant()
	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Name
	}
	stateOpts := append([]game.Option{game.WithHandsPerLevel(settings.HandsPerLevel)}, o.state...)

	return &Runner{
		id:       o.id,
		settings: settings,
		state:    game.NewState(v, names, settings.StartingStack, stateOpts...),
		seats:    seats,
		rng:      randutil.New(settings.Seed),
		estimator: equity.New(
			equity.WithTrials(settings.EquityTrials),
			equity.WithEvaluator(v.Evaluate),
		),
		sink:    o.sink,
		clock:   o.clock,
		logger:  o.logger.With().Str("component", "match").Str("match_id", o.id).Logger(),
		started: o.clock.Now(),
	}, nil
}

// ID returns the match ID.
func (r *Runner) ID() string {
	return r.id
}

// State returns the table state.
func (r *Runner) State() *game.State {
	return r.state
}

// Finished reports whether the hand limit has been reached or, in a
// tournament, only one agent is left.
func (r *Runner) Finished() bool {
	st := r.state
	if r.settings.MaxHands > 0 && st.HandNumber >= r.settings.MaxHands {
		return true
	}
	return st.Variant.Tournament && st.Alive() <= 1
}

// Run plays hands until the match is finished and records the summary.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.logger.Info().
		Str("game", r.state.Variant.String()).
		Int("seats", len(r.seats)).
		Int("max_hands", r.settings.MaxHands).
		Msg("Match starting")

	for !r.Finished() {
		if err := r.PlayHand(ctx); err != nil {
			return r.Result(), err
		}
	}

	res := r.Result()
	if err := r.sink.WriteSummary(ctx, res.Summary()); err != nil {
		r.logger.Error().Err(err).Msg("Failed to record match summary")
	}
	r.logger.Info().
		Int("hands", res.Hands).
		Str("winner", res.Winner).
		Dur("duration", res.Duration()).
		Msg("Match finished")
	return res, nil
}

// PlayHand plays a single hand.
func (r *Runner) PlayHand(ctx context.Context) error {
	if r.Finished() {
		return ErrMatchFinished
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.announce()

	st := r.state
	st.NewHand()
	deck := poker.NewDeck(r.rng)
	hist := &handHistory{}
	logger := r.logger.With().Int("hand", st.HandNumber).Logger()

	r.broadcast(handStartLines(st)...)
	hist.start(st)

	for _, post := range st.PostBlinds() {
		name := st.Seats[post.Seat].Name
		r.broadcast(moveLine(name, game.Post, post.Amount))
		hist.add("%s post %d", name, post.Amount)
	}

	for _, seat := range st.DealHole(deck) {
		line := handLine(st.Seats[seat].Name, st.Seats[seat].Hole)
		r.send(seat, line)
		hist.add("%s", line)
	}
	r.odds(hist, deck)

	for {
		if st.StartRound() {
			if err := r.bettingRound(ctx, hist, deck, logger); err != nil {
				return err
			}
		}
		if !st.Showdown() {
			break
		}
		if !hist.afterCards() {
			hist.pots(st.Pots())
		}
		if !st.AdvanceStreet(deck) {
			break
		}
		line := tableLine(st.Board)
		r.broadcast(line)
		hist.add("%s", line)
		r.odds(hist, deck)
	}

	r.settle(hist)

	for _, seat := range st.EndHand() {
		logger.Info().
			Str("agent", st.Seats[seat].Name).
			Int("finish", st.Seats[seat].Finish).
			Msg("Agent eliminated")
	}
	hist.add("Match end hand")

	if err := r.sink.WriteHand(ctx, history.Hand{
		MatchID: r.id,
		Number:  st.HandNumber,
		Game:    st.Variant.String(),
		Text:    hist.String(),
		Played:  r.clock.Now(),
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to record hand history")
	}
	logger.Debug().Int("pot", st.PotTotal()).Msg("Hand complete")
	return nil
}

// announce sends the match settings to every agent before the first hand.
func (r *Runner) announce() {
	if r.announced {
		return
	}
	r.announced = true
	st := r.state
	for i, seat := range r.seats {
		r.send(i, settingsLines(r.settings, st.Variant, seat.Name, st.SmallBlind, st.BigBlind)...)
	}
}

func (r *Runner) bettingRound(ctx context.Context, hist *handHistory, deck *poker.Deck, logger zerolog.Logger) error {
	st := r.state
	for {
		seat, ok := st.Next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := st.Seats[seat].Name
		maxWinPot, toCall := st.PreMove(seat)
		r.send(seat, preMoveLines(maxWinPot, toCall)...)

		response, elapsed := r.seats[seat].Channel.RequestAction(ctx, name)
		if err := ctx.Err(); err != nil {
			return err
		}
		move, parsed := game.ParseMove(response)
		if !parsed {
			if response == "" {
				r.note(seat, "Error, action set to 'check'")
			} else {
				r.note(seat, fmt.Sprintf("Bot input '%s' does not split into two parts. Action set to \"check\"", response))
			}
			logger.Warn().
				Str("agent", name).
				Str("response", response).
				Msg("Unusable response, action set to check")
		}

		applied := st.Apply(seat, move)
		for _, n := range applied.Notes {
			r.note(seat, n)
		}
		r.broadcast(moveLine(name, applied.Action, applied.Amount))
		hist.move(name, applied)
		// a fold changes everyone else's chances
		if applied.Action == game.Fold {
			r.odds(hist, deck)
		}

		logger.Debug().
			Str("agent", name).
			Str("street", st.Street.String()).
			Str("action", applied.Action.String()).
			Int("amount", applied.Amount).
			Dur("elapsed", elapsed).
			Strs("notes", applied.Notes).
			Msg("Action")
	}
}

// settle scores a showdown, pays the pots and tells the agents who won.
func (r *Runner) settle(hist *handHistory) {
	st := r.state
	showdown := st.Showdown()
	strengths := st.Strengths()
	contenders := st.Contenders()
	if showdown {
		for _, seat := range contenders {
			hist.strength(st.Seats[seat].Name, strengths[seat])
		}
	}

	out := st.Settle(strengths)
	hist.results(st, out)

	if showdown {
		for _, seat := range contenders {
			r.broadcast(handLine(st.Seats[seat].Name, st.Seats[seat].Hole))
		}
	}
	for seat, won := range out.Won {
		if won > 0 {
			r.broadcast(winsLine(st.Seats[seat].Name, won))
		}
	}
}

func (r *Runner) odds(hist *handHistory, deck *poker.Deck) {
	st := r.state
	hands := make([][]poker.Card, len(st.Seats))
	live := make([]bool, len(st.Seats))
	for i, seat := range st.Seats {
		hands[i] = seat.Hole
		live[i] = seat.InHand
	}
	hist.odds(st, r.estimator.Estimate(deck, st.Board, hands, live))
}

func (r *Runner) send(seat int, lines ...string) {
	ch := r.seats[seat].Channel
	for _, line := range lines {
		if err := ch.Send(line); err != nil {
			r.logger.Debug().Err(err).Str("agent", r.seats[seat].Name).Msg("Failed to send")
			return
		}
	}
}

// broadcast sends lines to every agent still in the match.
func (r *Runner) broadcast(lines ...string) {
	for i, seat := range r.state.Seats {
		if seat.InMatch {
			r.send(i, lines...)
		}
	}
}

type noter interface {
	Note(text string)
}

func (r *Runner) note(seat int, text string) {
	if n, ok := r.seats[seat].Channel.(noter); ok {
		n.Note(text)
	}
}

// Result reports the match as it stands.
func (r *Runner) Result() *Result {
	st := r.state
	res := &Result{
		ID:       r.id,
		Game:     st.Variant.String(),
		Hands:    st.HandNumber,
		Started:  r.started,
		Finished: r.clock.Now(),
	}
	for i, seat := range st.Seats {
		sr := SeatResult{
			Name:     seat.Name,
			Stack:    seat.Stack,
			Finish:   seat.Finish,
			GainLoss: seat.GainLoss,
		}
		ch := r.seats[i].Channel
		if t, ok := ch.(interface{ Timeouts() int }); ok {
			sr.Timeouts = t.Timeouts()
		}
		if d, ok := ch.(agent.Dumper); ok {
			sr.Dump = d.Dump()
		}
		res.Seats = append(res.Seats, sr)
	}
	res.Winner = r.leader()
	return res
}

// leader names the tournament winner. When the hand limit ends a match
// first, the sole biggest stack leads a tournament and the sole biggest
// gain leads a cash game; ties have no leader.
func (r *Runner) leader() string {
	st := r.state
	if w := st.Winner(); w >= 0 {
		return st.Seats[w].Name
	}
	if st.HandNumber == 0 {
		return ""
	}
	best, leader := 0, -1
	for i, seat := range st.Seats {
		score := seat.Stack
		if !st.Variant.Tournament {
			score = seat.GainLoss
		}
		switch {
		case leader == -1 || score > best:
			best, leader = score, i
		case score == best:
			leader = -2
		}
	}
	if leader < 0 {
		return ""
	}
	return st.Seats[leader].Name
}
