package poker

// Rank-mask lookup tables. Every table is indexed by a 13-bit rank mask
// (bit 12 is the ace in high order, bit 0 the deuce) and covers every mask up
// to and including 0x1FC0, the largest seven-rank combination reachable by
// OR-ing two single bits into a five-bit straight mask.
const tableSize = 0x1FC0 + 1

type rankTables struct {
	// nbrOfRanks is the population count of the mask.
	nbrOfRanks [tableSize]int
	// hiRank is the index of the highest set bit.
	hiRank [tableSize]Strength
	// hiUpTo5 packs the top five set ranks as nibbles, highest in the most
	// significant used nibble.
	hiUpTo5 [tableSize]Strength
	// lo3 is the lowest three set bits of an ace-low mask, or zero when fewer
	// than three of the eight lowest ranks are present.
	lo3 [tableSize]uint32
	// loMaskOrNo8Low is the lowest five set bits among the eight lowest ranks
	// of an ace-low mask, or NoEightLow when fewer than five are present.
	loMaskOrNo8Low [tableSize]Strength
	// straight holds the straight value for any mask that contains a
	// straight, zero otherwise.
	straight [tableSize]Strength
}

// tab is built once at package initialisation and never written afterwards,
// so the evaluators may be called from any number of goroutines.
var tab = buildRankTables()

// buildRankTables fills the tables in a fixed order: the per-mask counts and
// low masks first, then straights from ace-high down to six-high, and the
// wheel last so that any mask holding a higher straight keeps it.
func buildRankTables() *rankTables {
	t := &rankTables{}

	for mask := 1; mask < tableSize; mask++ {
		bitCount := 0
		var ranks Strength
		shiftReg := mask
		for i := int(Ace); i >= 0; i-- {
			if shiftReg&0x1000 != 0 {
				bitCount++
				if bitCount <= 5 {
					ranks = ranks<<rankShift1 | Strength(i)
					if bitCount == 1 {
						t.hiRank[mask] = Strength(i)
					}
				}
			}
			shiftReg <<= 1
		}
		t.nbrOfRanks[mask] = bitCount
		t.hiUpTo5[mask] = ranks

		t.loMaskOrNo8Low[mask] = NoEightLow
		bitCount = 0
		var value uint32
		for i := range 8 {
			if mask&(1<<i) == 0 {
				continue
			}
			value |= 1 << i
			bitCount++
			if bitCount == 3 {
				t.lo3[mask] = value
			}
			if bitCount == 5 {
				t.loMaskOrNo8Low[mask] = Strength(value)
				break
			}
		}
	}

	for ts := 0x1F00; ts >= 0x001F; ts >>= 1 {
		t.setStraight(ts)
	}
	t.setStraight(0x100F)

	return t
}

// setStraight marks every mask formed by adding up to two extra ranks to the
// five-rank run ts. Masks already holding a higher straight are left alone.
func (t *rankTables) setStraight(ts int) {
	for i := 0x1000; i > 0; i >>= 1 {
		for j := 0x1000; j > 0; j >>= 1 {
			es := ts | i | j
			if t.straight[es] != 0 {
				continue
			}
			if ts == 0x100F {
				t.straight[es] = straightValue | Strength(Five)<<rankShift4
			} else {
				t.straight[es] = straightValue | t.hiRank[ts]<<rankShift4
			}
		}
	}
}
