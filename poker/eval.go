package poker

// High-hand evaluation over the Hand accumulator. Each evaluator branches on
// the number of distinct ranks and resolves the hand with a handful of table
// lookups and bit operations, without sorting or looping over cards.

// suitFields splits a hand into its four 13-bit rank fields.
func suitFields(hand Hand) (c, d, h, s uint32) {
	c = uint32(hand) & 0x1FFF
	d = uint32(hand>>16) & 0x1FFF
	h = uint32(hand>>32) & 0x1FFF
	s = uint32(hand>>48) & 0x1FFF
	return c, d, h, s
}

// Eval returns the high value of the best five-card hand found in a hand of
// five, six or seven cards. Other sizes evaluate to zero.
func Eval(hand Hand) Strength {
	switch hand.CountCards() {
	case 5:
		return Eval5(hand)
	case 6:
		return Eval6(hand)
	case 7:
		return Eval7(hand)
	}
	return 0
}

// flushOrStraight checks the suits in order for a flush. spare is the number
// of cards beyond five: once a suit holds more than spare cards no other suit
// can hold five. It returns zero when the hand has neither flush nor straight.
func flushOrStraight(spare int, ranks, c, d, h, s uint32) Strength {
	n := tab.nbrOfRanks[c]
	if n > spare {
		if n >= 5 {
			return suitedValue(c)
		}
		return tab.straight[ranks]
	}
	k := tab.nbrOfRanks[d]
	n += k
	if n > spare {
		if k >= 5 {
			return suitedValue(d)
		}
		return tab.straight[ranks]
	}
	k = tab.nbrOfRanks[h]
	n += k
	if n > spare {
		if k >= 5 {
			return suitedValue(h)
		}
		return tab.straight[ranks]
	}
	return suitedValue(s)
}

// suitedValue values a suit field known to hold at least five cards.
func suitedValue(field uint32) Strength {
	if v := tab.straight[field]; v != 0 {
		return v + (straightFlushValue - straightValue)
	}
	return flushValue | tab.hiUpTo5[field]
}

// pairedRank returns the one pairwise suit intersection holding exactly two
// ranks, used when two different ranks each appear three times.
func pairedRank(c, d, h, s uint32) uint32 {
	for _, m := range [...]uint32{c & d, c & h, c & s, d & h, d & s} {
		if tab.nbrOfRanks[m] == 2 {
			return m
		}
	}
	return h & s
}

// Eval7 returns the value of the best five-card hand in seven cards.
func Eval7(hand Hand) Strength {
	c, d, h, s := suitFields(hand)
	ranks := c | d | h | s

	switch tab.nbrOfRanks[ranks] {
	case 2: // quads with trips
		i := c & d & h & s
		return fourOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3

	case 3:
		i := c ^ d ^ h ^ s
		if tab.nbrOfRanks[i] == 3 { // two sets of trips and a single
			i = pairedRank(c, d, h, s)
			return fullHouseValue | tab.hiUpTo5[i]<<rankShift3
		}
		if j := c & d & h & s; j != 0 { // quads, pair and single
			return fourOfAKindValue | tab.hiRank[j]<<rankShift4 | tab.hiRank[ranks^j]<<rankShift3
		}
		// trips and two pairs
		return fullHouseValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[ranks^i]<<rankShift3

	case 4:
		i := c ^ d ^ h ^ s
		if tab.nbrOfRanks[i] == 1 { // three pairs and a single
			j := tab.hiUpTo5[ranks^i]
			return twoPairValue | (j&0x0FF0)<<rankShift2 | tab.hiRank[i|1<<(j&0xF)]<<rankShift2
		}
		j := c & d & h & s
		if j == 0 { // trips, pair and two singles
			i ^= ranks
			j = (c & d) &^ i
			if j == 0 {
				j = (h & s) &^ i
			}
			return fullHouseValue | tab.hiRank[j]<<rankShift4 | tab.hiRank[i]<<rankShift3
		}
		// quads and three singles
		return fourOfAKindValue | tab.hiRank[j]<<rankShift4 | tab.hiRank[i]<<rankShift3

	case 5:
		if v := flushOrStraight(2, ranks, c, d, h, s); v != 0 {
			return v
		}
		i := c ^ d ^ h ^ s
		if tab.nbrOfRanks[i] != 5 { // two pairs and three singles
			return twoPairValue | tab.hiUpTo5[i^ranks]<<rankShift3 | tab.hiRank[i]<<rankShift2
		}
		j := c & d
		if j == 0 {
			j = h & s
		}
		return threeOfAKindValue | tab.hiRank[j]<<rankShift4 | tab.hiUpTo5[i^j]&0x0FF00

	case 6:
		if v := flushOrStraight(2, ranks, c, d, h, s); v != 0 {
			return v
		}
		i := c ^ d ^ h ^ s
		return pairValue | tab.hiRank[ranks^i]<<rankShift4 | (tab.hiUpTo5[i]&0x0FFF00)>>rankShift1

	case 7:
		if v := flushOrStraight(2, ranks, c, d, h, s); v != 0 {
			return v
		}
		return noPairValue | tab.hiUpTo5[ranks]
	}
	return 0
}

// Eval6 returns the value of the best five-card hand in six cards.
func Eval6(hand Hand) Strength {
	c, d, h, s := suitFields(hand)
	ranks := c | d | h | s

	switch tab.nbrOfRanks[ranks] {
	case 2:
		i := c ^ d ^ h ^ s
		if i != 0 { // two sets of trips
			return fullHouseValue | tab.hiUpTo5[i]<<rankShift3
		}
		i = c & d & h & s // quads and a pair
		return fourOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3

	case 3:
		if c^d^h^s == 0 { // three pairs
			return twoPairValue | tab.hiUpTo5[ranks]<<rankShift2
		}
		i := c & d & h & s
		if i == 0 { // trips, pair and single
			i = c & d & h
			if i == 0 {
				i = c & d & s
				if i == 0 {
					i = c & h & s
					if i == 0 {
						i = d & h & s
					}
				}
			}
			j := c ^ d ^ h ^ s
			return fullHouseValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[j^ranks]<<rankShift3
		}
		// quads and two singles
		return fourOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3

	case 4:
		i := c ^ d ^ h ^ s
		if i != ranks { // two pairs and two singles
			return twoPairValue | tab.hiUpTo5[i^ranks]<<rankShift3 | tab.hiRank[i]<<rankShift2
		}
		i = c & d
		if i == 0 {
			i = h & s
		}
		return threeOfAKindValue | tab.hiRank[i]<<rankShift4 | (tab.hiUpTo5[ranks^i]&0x00FF0)<<rankShift1

	case 5:
		if v := flushOrStraight(1, ranks, c, d, h, s); v != 0 {
			return v
		}
		i := c ^ d ^ h ^ s
		return pairValue | tab.hiRank[i^ranks]<<rankShift4 | tab.hiUpTo5[i]&0x0FFF0

	case 6:
		if v := flushOrStraight(1, ranks, c, d, h, s); v != 0 {
			return v
		}
		return noPairValue | tab.hiUpTo5[ranks]
	}
	return 0
}

// Eval5 returns the value of a five-card hand.
func Eval5(hand Hand) Strength {
	c, d, h, s := suitFields(hand)
	ranks := c | d | h | s

	switch tab.nbrOfRanks[ranks] {
	case 2:
		i := c & d
		if i&h&s == 0 { // full house
			i = c ^ d ^ h ^ s
			return fullHouseValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3
		}
		return fourOfAKindValue | tab.hiRank[i]<<rankShift4 | tab.hiRank[i^ranks]<<rankShift3

	case 3:
		i := c ^ d ^ h ^ s
		if i == ranks { // trips and two kickers
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
		v := tab.straight[ranks]
		if v == 0 {
			v = tab.hiUpTo5[ranks]
		}
		if !isFlush5(ranks, c, d, h, s) {
			return v
		}
		if v < straightValue {
			return flushValue | v
		}
		return v + (straightFlushValue - straightValue)
	}
	return 0
}

// isFlush5 reports whether five distinct ranks share one suit.
func isFlush5(ranks, c, d, h, s uint32) bool {
	switch {
	case c != 0:
		return c == ranks
	case d != 0:
		return d == ranks
	case h != 0:
		return h == ranks
	}
	return s == ranks
}
