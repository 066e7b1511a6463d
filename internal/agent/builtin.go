package agent

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/lox/headsup/poker"
)

// Builtin strategy names.
const (
	CallingStation = "callingstation"
	Random         = "random"
	Raiser         = "raiser"
	Chart          = "chart"
)

// Builtins lists the strategies NewBuiltin accepts.
var Builtins = []string{CallingStation, Random, Raiser, Chart}

// ErrUnknownBuiltin is returned for a strategy name NewBuiltin does not know.
var ErrUnknownBuiltin = errors.New("agent: unknown built-in strategy")

// view is what a built-in bot has learned from the protocol so far.
type view struct {
	name      string
	bigBlind  int
	hole      []poker.Card
	board     []poker.Card
	toCall    int
	maxWinPot int
}

type strategy func(v *view, rng *rand.Rand) string

var strategies = map[string]strategy{
	CallingStation: callingStation,
	Random:         randomMove,
	Raiser:         raiser,
	Chart:          chart,
}

// callingStation never folds and never raises.
func callingStation(v *view, _ *rand.Rand) string {
	if v.toCall > 0 {
		return "call 0"
	}
	return "check 0"
}

func randomMove(v *view, rng *rand.Rand) string {
	switch rng.IntN(4) {
	case 0:
		if v.toCall > 0 {
			return "fold 0"
		}
		return "check 0"
	case 1:
		return fmt.Sprintf("raise %d", v.bigBlind*(1+rng.IntN(4)))
	default:
		return callingStation(v, rng)
	}
}

// raiser puts in a pot sized raise whenever it can.
func raiser(v *view, _ *rand.Rand) string {
	return fmt.Sprintf("raise %d", max(v.maxWinPot, v.bigBlind))
}

// chart shoves premium starting hands, limps or calls small bets with
// playable ones and check-calls after the flop.
func chart(v *view, rng *rand.Rand) string {
	if len(v.board) > 0 {
		return callingStation(v, rng)
	}
	switch poker.CategorizeHole(v.hole) {
	case poker.HolePremium:
		return "raise 1000000"
	case poker.HoleStrong:
		return fmt.Sprintf("raise %d", 3*v.bigBlind)
	case poker.HoleMedium:
		if v.toCall <= 2*v.bigBlind {
			return callingStation(v, rng)
		}
	}
	if v.toCall == 0 {
		return "check 0"
	}
	return "fold 0"
}

// NewBuiltin starts an in-process bot playing the named strategy with its
// own random source. The bot runs until the agent is closed or ctx is done.
func NewBuiltin(ctx context.Context, kind string, rng *rand.Rand, cfg Config) (*PipeAgent, error) {
	play, ok := strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, kind)
	}
	a, peer := NewPipe(kind, cfg)
	go runBuiltin(ctx, peer, play, rng)
	return a, nil
}

func runBuiltin(ctx context.Context, peer *Peer, play strategy, rng *rand.Rand) {
	v := &view{bigBlind: 20}
	logger := peer.Logger()
	for {
		text, err := peer.Recv(ctx)
		if err != nil {
			logger.Debug().Err(err).Msg("Built-in bot stopped")
			return
		}
		if v.observe(text) {
			peer.Reply(play(v, rng))
		}
	}
}

// observe updates the view from one protocol line and reports whether the
// line asks this bot to act.
func (v *view) observe(text string) bool {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return false
	}
	number := func() int {
		n, _ := strconv.Atoi(fields[2])
		return n
	}

	switch {
	case fields[0] == "Action":
		return fields[1] == v.name
	case fields[0] == "Settings" && fields[1] == "your_bot":
		v.name = fields[2]
	case fields[0] == "Settings" && fields[1] == "big_blind",
		fields[0] == "Match" && fields[1] == "bigBlind":
		v.bigBlind = number()
	case fields[0] == "Match" && fields[1] == "round":
		v.hole, v.board = nil, nil
	case fields[0] == "Match" && fields[1] == "table":
		v.board, _ = poker.ParseCards(fields[2])
	case fields[0] == "Match" && fields[1] == "amountToCall":
		v.toCall = number()
	case fields[0] == "Match" && fields[1] == "maxWinPot":
		v.maxWinPot = number()
	case fields[0] == v.name && fields[1] == "hand":
		v.hole, _ = poker.ParseCards(fields[2])
	}
	return false
}
