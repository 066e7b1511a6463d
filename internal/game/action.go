package game

import (
	"strconv"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	Post
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "post"}[a]
}

// Move is an agent's answer to an action request. Word keeps the action
// exactly as it was received so normalization notes can echo it.
type Move struct {
	Word   string
	Action Action
	Amount int
}

// DefaultMove is substituted when an agent gives no usable answer.
var DefaultMove = Move{Word: "check", Action: Check}

// ParseMove turns a response line into a Move. The line must split into
// exactly two whitespace separated fields, an action word and a numeric
// amount; fractional amounts are truncated. Anything else yields the default
// check and ok=false. Unknown action words parse successfully and fold when
// applied.
func ParseMove(line string) (Move, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return DefaultMove, false
	}
	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return DefaultMove, false
	}

	m := Move{Word: fields[0], Amount: int(amount)}
	switch strings.ToLower(fields[0]) {
	case "raise":
		m.Action = Raise
	case "call":
		m.Action = Call
	case "check":
		m.Action = Check
	default:
		m.Action = Fold
	}
	return m, true
}

// Applied describes what a Move turned into after normalization.
type Applied struct {
	Seat     int
	Original Move
	Action   Action
	// Amount is the broadcast amount: chips put in for a call, the size of
	// the raise above the call for a raise, zero otherwise.
	Amount int
	// Bet is the seat's total contribution to the current round afterwards.
	Bet int
	// Extra is the amount to call for a call and the raise size for a raise.
	Extra int
	// Reason is the last rule that altered the move, "" when none did.
	Reason string
	// Notes holds every correction made to the move, phrased for the agent.
	Notes []string
}

// Changed reports whether normalization altered the action or amount.
func (a Applied) Changed() bool {
	return a.Original.Word != a.Action.String() || a.Original.Amount != a.Amount
}

func (a *Applied) correct(reason, consequence string) {
	a.Reason = reason
	a.Notes = append(a.Notes, reason+", "+consequence)
}
