package match

import (
	"fmt"
	"strings"

	"github.com/lox/headsup/internal/equity"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// handHistory accumulates the history text of one hand.
type handHistory struct {
	b strings.Builder
}

func (h *handHistory) add(format string, args ...any) {
	if h.b.Len() > 0 {
		h.b.WriteByte('\n')
	}
	fmt.Fprintf(&h.b, format, args...)
}

func (h *handHistory) String() string {
	return h.b.String()
}

// afterCards reports whether nothing has happened since cards were last
// shown.
func (h *handHistory) afterCards() bool {
	return strings.HasSuffix(h.b.String(), "]")
}

func (h *handHistory) start(st *game.State) {
	h.add("Match hand %d", st.HandNumber)
	h.add("Match dealerButton %s", st.Seats[st.Button].Name)
	for _, seat := range st.Seats {
		if seat.Stack > 0 {
			h.add("%s stack %d", seat.Name, seat.Stack)
		}
	}
}

func (h *handHistory) move(name string, a game.Applied) {
	if !a.Changed() {
		h.add("%s %s %d %d", name, a.Action, a.Bet, a.Extra)
		return
	}
	h.add("%s %s %d %d %s %d %s", name, a.Action, a.Bet, a.Extra, a.Original.Word, a.Original.Amount, a.Reason)
}

func (h *handHistory) odds(st *game.State, permille []int) {
	for i, seat := range st.Seats {
		h.add("%s odds %s%%", seat.Name, equity.FormatPercent(permille[i]))
	}
}

func (h *handHistory) pots(layers []game.Layer) {
	if len(layers) == 0 {
		h.add("Match pot 0")
		return
	}
	for i, l := range layers {
		if i == 0 {
			h.add("Match pot %d", l.Amount)
		} else {
			h.add("Match sidepot%d %d", i, l.Amount)
		}
	}
}

func (h *handHistory) strength(name string, s poker.Strength) {
	h.add("%s strength %s", name, s.Category().Code())
}

// results lists the winners of each pot, side pots first.
func (h *handHistory) results(st *game.State, out game.Settlement) {
	for i := len(out.Layers) - 1; i >= 0; i-- {
		parts := make([]string, len(out.Layers[i].Awards))
		for j, award := range out.Layers[i].Awards {
			parts[j] = fmt.Sprintf("%s:%d", st.Seats[award.Seat].Name, award.Chips)
		}
		label := "pot"
		if i > 0 {
			label = fmt.Sprintf("sidepot%d", i)
		}
		h.add("Result %s [%s]", label, strings.Join(parts, ","))
	}
}
