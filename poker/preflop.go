package poker

// HoleCategory is a coarse preflop strength bucket used by the built-in bots.
type HoleCategory uint8

const (
	HoleTrash HoleCategory = iota
	HoleWeak
	HoleMedium
	HoleStrong
	HolePremium
)

var holeCategoryNames = [...]string{"Trash", "Weak", "Medium", "Strong", "Premium"}

func (c HoleCategory) String() string {
	if int(c) < len(holeCategoryNames) {
		return holeCategoryNames[c]
	}
	return "Unknown"
}

// CategorizeHole buckets a starting hand. Two cards are rated directly; for
// four-card Omaha holdings the best rated pair is returned.
//
//	Premium: JJ+, AK
//	Strong:  TT, AQ, AJ
//	Medium:  77-99, suited broadway
//	Weak:    22-66, suited cards within two ranks
func CategorizeHole(hole []Card) HoleCategory {
	best := HoleTrash
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			if c := categorizePair(hole[i], hole[j]); c > best {
				best = c
			}
		}
	}
	return best
}

func categorizePair(a, b Card) HoleCategory {
	lo, hi := a.Rank(), b.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	suited := a.Suit() == b.Suit()
	paired := lo == hi

	switch {
	case paired && lo >= Jack, lo == King && hi == Ace:
		return HolePremium
	case paired && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return HoleStrong
	case paired && lo >= Seven, suited && lo >= Ten:
		return HoleMedium
	case paired, suited && hi-lo <= 2:
		return HoleWeak
	}
	return HoleTrash
}
