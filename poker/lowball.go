package poker

// Low-hand evaluation. Razz and ace-to-five treat the ace as the lowest card
// and ignore straights and flushes; every result is ranked so that a smaller
// Strength is the better low. Deuce-to-seven keeps the high ordering and is
// compared the same way.

// rotateAceLow moves the ace from bit 12 to bit 0 of a rank field.
func rotateAceLow(field uint32) uint32 {
	return (field&0x0FFF)<<1 | (field&0x1000)>>12
}

func lowSuitFields(hand Hand) (c, d, h, s uint32) {
	c, d, h, s = suitFields(hand)
	return rotateAceLow(c), rotateAceLow(d), rotateAceLow(h), rotateAceLow(s)
}

// RanksMask returns the union of ranks present in the hand, ace high.
func RanksMask(hand Hand) uint32 {
	c, d, h, s := suitFields(hand)
	return c | d | h | s
}

// RanksMaskLow returns the union of ranks present in the hand with the ace
// moved to the lowest bit.
func RanksMaskLow(hand Hand) uint32 {
	return rotateAceLow(RanksMask(hand))
}

// EvalRazz returns the value of the best five-card razz hand from seven
// cards.
func EvalRazz(hand Hand) Strength {
	c, d, h, s := lowSuitFields(hand)
	ranks := c | d | h | s

	switch tab.nbrOfRanks[ranks] {
	case 2: // quads and trips
		i := c & d & h & s
		j := i ^ ranks
		if i < j {
			return fullHouseValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[j]<<rankShift3
		}
		return fullHouseValue | tab.hiRank[j]<<rankShift4 | tab.hiRank[i]<<rankShift3

	case 3:
		i := c ^ d ^ h ^ s
		if tab.nbrOfRanks[i] == 3 { // two sets of trips and a single
			i = pairedRank(c, d, h, s)
			return twoPairValue | tab.hiUpTo5[i]<<rankShift3 | tab.hiRank[ranks^i]<<rankShift2
		}
		if c&d&h&s != 0 { // quads, pair and single
			return twoPairValue | tab.hiUpTo5[ranks^i]<<rankShift3 | tab.hiRank[i]<<rankShift2
		}
		// trips and two pairs: the two lowest ranks pair up, the highest kicks
		v := tab.hiUpTo5[ranks]
		return twoPairValue | (v|v<<12)&0x0FFF00

	case 4:
		i := c ^ d ^ h ^ s
		if tab.nbrOfRanks[i] == 1 { // three pairs and a single
			j := ranks ^ i
			k := tab.hiUpTo5[j] & 0xF
			i |= j ^ 1<<k
			return pairValue | k<<rankShift4 | tab.hiUpTo5[i]<<rankShift1
		}
		j := c & d & h & s
		if j == 0 { // trips, pair and two singles
			i ^= ranks
			j = (c & d) &^ i
			if j == 0 {
				j = (h & s) &^ i
			}
			if i < j {
				return pairValue | tab.hiRank[i]<<rankShift4 | tab.hiUpTo5[ranks^i]<<rankShift1
			}
			return pairValue | tab.hiRank[j]<<rankShift4 | tab.hiUpTo5[ranks^j]<<rankShift1
		}
		// quads and three singles
		return pairValue | tab.hiRank[j]<<rankShift4 | tab.hiUpTo5[i]<<rankShift1

	case 5:
		return noPairValue | tab.hiUpTo5[ranks]

	case 6:
		i := ranks ^ 1<<tab.hiRank[ranks]
		return noPairValue | tab.hiUpTo5[i]

	case 7:
		i := ranks ^ 1<<tab.hiRank[ranks]
		i ^= 1 << tab.hiRank[i]
		return noPairValue | tab.hiUpTo5[i]
	}
	return 0
}

// EvalAceToFive returns the ace-to-five low value of a five-card hand.
func EvalAceToFive(hand Hand) Strength {
	c, d, h, s := lowSuitFields(hand)
	ranks := c | d | h | s

	switch tab.nbrOfRanks[ranks] {
	case 2:
		i := c & d
		if i&h&s == 0 {
			i = c ^ d ^ h ^ s
			return fullHouseValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3
		}
		return fourOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3

	case 3:
		i := c ^ d ^ h ^ s
		if i == ranks {
			i = c & d
			if i == 0 {
				i = c & h
				if i == 0 {
					i = d & h
				}
			}
			return threeOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiUpTo5[i^ranks]<<rankShift2
		}
		return twoPairValue | tab.hiUpTo5[i^ranks]<<rankShift3 | tab.hiRank[i]<<rankShift2

	case 4:
		i := c ^ d ^ h ^ s
		return pairValue | tab.hiRank[ranks^i]<<rankShift4 | tab.hiUpTo5[i]<<rankShift1

	case 5:
		return noPairValue | tab.hiUpTo5[ranks]
	}
	return 0
}

const (
	wheelValue      Strength = straightValue | Strength(Five)<<rankShift4
	wheelFlushValue Strength = straightFlushValue | Strength(Five)<<rankShift4
	aceHighNoPair   Strength = noPairValue | Strength(Ace)<<rankShift4 | 0x3210
	aceHighFlushLow Strength = flushValue | Strength(Ace)<<rankShift4 | 0x3210
)

// EvalDeuceToSeven returns the deuce-to-seven value of a five-card hand. The
// ace only plays high, so A-2-3-4-5 is an ace-high no pair rather than a
// straight. Lower values are better lows.
func EvalDeuceToSeven(hand Hand) Strength {
	switch v := Eval5(hand); v {
	case wheelValue:
		return aceHighNoPair
	case wheelFlushValue:
		return aceHighFlushLow
	default:
		return v
	}
}

// EvalEightLow returns the eight-or-better low value of a hand, or NoEightLow
// when fewer than five distinct ranks of eight or lower are present. Smaller
// values are better lows.
func EvalEightLow(hand Hand) Strength {
	r := tab.loMaskOrNo8Low[RanksMaskLow(hand)]
	if r == NoEightLow {
		return NoEightLow
	}
	return tab.hiUpTo5[r]
}
