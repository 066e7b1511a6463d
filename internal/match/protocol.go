package match

import (
	"fmt"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// Lines the engine sends to agents. Every message is one line of space
// separated words.

func settingsLines(s Settings, v game.Variant, name string, small, big int) []string {
	var lines []string
	if v.Tournament {
		lines = append(lines,
			fmt.Sprintf("Settings hands_per_level %d", s.HandsPerLevel),
			fmt.Sprintf("Settings starting_stack %d", s.StartingStack))
	} else {
		lines = append(lines,
			fmt.Sprintf("Settings small_blind %d", small),
			fmt.Sprintf("Settings big_blind %d", big))
	}
	return append(lines,
		fmt.Sprintf("Settings your_bot %s", name),
		fmt.Sprintf("Settings timebank %d", s.TimeBankMS),
		fmt.Sprintf("Settings time_per_move %d", s.TimePerMoveMS))
}

func handStartLines(st *game.State) []string {
	lines := []string{fmt.Sprintf("Match round %d", st.HandNumber)}
	if st.Variant.Tournament {
		lines = append(lines,
			fmt.Sprintf("Match smallBlind %d", st.SmallBlind),
			fmt.Sprintf("Match bigBlind %d", st.BigBlind))
	}
	lines = append(lines, fmt.Sprintf("Match onButton %s", st.Seats[st.Button].Name))
	for _, seat := range st.Seats {
		if seat.Stack > 0 {
			lines = append(lines, fmt.Sprintf("%s stack %d", seat.Name, seat.Stack))
		}
	}
	return lines
}

func handLine(name string, cards []poker.Card) string {
	return fmt.Sprintf("%s hand %s", name, poker.FormatCards(cards))
}

func tableLine(board []poker.Card) string {
	return "Match table " + poker.FormatCards(board)
}

func preMoveLines(maxWinPot, toCall int) []string {
	return []string{
		fmt.Sprintf("Match maxWinPot %d", maxWinPot),
		fmt.Sprintf("Match amountToCall %d", toCall),
	}
}

func moveLine(name string, action game.Action, amount int) string {
	return fmt.Sprintf("%s %s %d", name, action, amount)
}

func winsLine(name string, chips int) string {
	return fmt.Sprintf("%s wins %d", name, chips)
}
