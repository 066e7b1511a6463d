package game

import "github.com/lox/headsup/poker"

// GameType selects the dealt hand and how it is scored.
type GameType int

const (
	Holdem GameType = iota
	Omaha
)

func (g GameType) String() string {
	return [...]string{"holdem", "omaha"}[g]
}

// Limit selects the raise cap.
type Limit int

const (
	NoLimit Limit = iota
	PotLimit
)

func (l Limit) String() string {
	return [...]string{"no-limit", "pot-limit"}[l]
}

// Variant is the game selected by a numeric game code.
type Variant struct {
	Code       int
	Game       GameType
	Limit      Limit
	Tournament bool
}

// VariantForCode maps the game codes understood by the engine:
//
//	11-13  no-limit hold'em tournament
//	14-15  no-limit hold'em cash
//	16-18  pot-limit omaha tournament
//	19-20  pot-limit omaha cash
func VariantForCode(code int) (Variant, bool) {
	v := Variant{Code: code}
	switch {
	case code >= 11 && code <= 13:
		v.Game, v.Limit, v.Tournament = Holdem, NoLimit, true
	case code >= 14 && code <= 15:
		v.Game, v.Limit, v.Tournament = Holdem, NoLimit, false
	case code >= 16 && code <= 18:
		v.Game, v.Limit, v.Tournament = Omaha, PotLimit, true
	case code >= 19 && code <= 20:
		v.Game, v.Limit, v.Tournament = Omaha, PotLimit, false
	default:
		return Variant{}, false
	}
	return v, true
}

// HoleCards returns the number of private cards dealt per seat.
func (v Variant) HoleCards() int {
	if v.Game == Omaha {
		return 4
	}
	return 2
}

// Evaluate scores a hole hand against a complete five-card board.
func (v Variant) Evaluate(hole, board []poker.Card) poker.Strength {
	if v.Game == Omaha {
		return poker.EvalOmaha(hole, board)
	}
	return poker.Eval7(poker.NewHand(hole...) | poker.NewHand(board...))
}

func (v Variant) String() string {
	format := "cash"
	if v.Tournament {
		format = "tournament"
	}
	return v.Limit.String() + " " + v.Game.String() + " " + format
}

// bigBlindLevels is the big blind of each tournament level.
var bigBlindLevels = [...]int{
	20, 30, 40, 50, 60, 80,
	100, 120, 160, 200, 240, 300, 400, 500, 600, 800,
	1000, 1200, 1600, 2000, 2400, 3000, 4000, 5000, 6000, 8000,
	10000, 12000, 16000, 20000, 24000, 30000, 40000, 50000, 60000, 80000,
	100000, 120000, 160000, 200000, 240000, 300000, 400000, 500000, 600000, 800000,
	1000000,
}

// MaxBlindLevel is the last level; blinds stop rising there.
const MaxBlindLevel = len(bigBlindLevels) - 1

// BlindsForLevel returns the small and big blind of a level, clamped to the
// level table.
func BlindsForLevel(level int) (small, big int) {
	level = max(0, min(level, MaxBlindLevel))
	big = bigBlindLevels[level]
	return big / 2, big
}
