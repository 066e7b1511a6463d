package poker

// Omaha hands must use exactly two hole cards and three board cards.

// omahaHolePairs and omahaBoardTriples enumerate the index combinations of
// two-of-four and three-of-five.
var (
	omahaHolePairs = [6][2]int{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	}
	omahaBoardTriples = [10][3]int{
		{0, 1, 2}, {0, 1, 3}, {0, 1, 4}, {0, 2, 3}, {0, 2, 4},
		{0, 3, 4}, {1, 2, 3}, {1, 2, 4}, {1, 3, 4}, {2, 3, 4},
	}
)

// EvalOmaha returns the best high value over every two-of-four hole and
// three-of-five board combination. It returns zero unless exactly four hole
// cards and five board cards are given.
func EvalOmaha(hole, board []Card) Strength {
	if len(hole) != 4 || len(board) != 5 {
		return 0
	}
	var best Strength
	for _, hp := range omahaHolePairs {
		two := hole[hp[0]].Mask() | hole[hp[1]].Mask()
		for _, bt := range omahaBoardTriples {
			h := two | board[bt[0]].Mask() | board[bt[1]].Mask() | board[bt[2]].Mask()
			if v := Eval5(h); v > best {
				best = v
			}
		}
	}
	return best
}

// OmahaEightLow returns the best eight-or-better low using exactly two hole
// cards and three board cards, or NoEightLow when none qualifies. A board
// holding fewer than three distinct low ranks cannot make a low, and hole
// cards above eight never play, so both are rejected before pairing.
func OmahaEightLow(hole, board Hand) Strength {
	boardMask := RanksMaskLow(board)
	if tab.lo3[boardMask] == 0 {
		return NoEightLow
	}

	var lows [4]uint32
	n := 0
	for _, c := range hole.Cards() {
		m := RanksMaskLow(c.Mask())
		if m <= 0x80 && n < len(lows) {
			lows[n] = m
			n++
		}
	}

	best := NoEightLow
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v := omahaLowMask(lows[i]|lows[j], boardMask); v < best {
				best = v
			}
		}
	}
	if best == NoEightLow {
		return NoEightLow
	}
	return tab.hiUpTo5[best]
}

// omahaLowMask combines a two-rank hole mask with the three lowest board
// ranks it does not duplicate. The result is a five-rank low mask or
// NoEightLow.
func omahaLowMask(two, boardMask uint32) Strength {
	return tab.loMaskOrNo8Low[tab.lo3[boardMask&^two]|two]
}
