package poker

import "fmt"

// Strength is a packed hand value laid out as 0x0V0RRRRR: V is the Category
// and the five R nibbles hold the significant ranks, primary ranks first,
// then kickers, then zero padding. For high games a larger Strength wins;
// for low games a smaller one does.
type Strength uint32

// Category enumerates the hand categories ordered from weakest to strongest.
type Category uint8

const (
	NoPair Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	rankShift1 = 4
	rankShift2 = rankShift1 + 4
	rankShift3 = rankShift2 + 4
	rankShift4 = rankShift3 + 4
	valueShift = rankShift4 + 8
)

const (
	noPairValue        Strength = Strength(NoPair) << valueShift
	pairValue          Strength = Strength(Pair) << valueShift
	twoPairValue       Strength = Strength(TwoPair) << valueShift
	threeOfAKindValue  Strength = Strength(ThreeOfAKind) << valueShift
	straightValue      Strength = Strength(Straight) << valueShift
	flushValue         Strength = Strength(Flush) << valueShift
	fullHouseValue     Strength = Strength(FullHouse) << valueShift
	fourOfAKindValue   Strength = Strength(FourOfAKind) << valueShift
	straightFlushValue Strength = Strength(StraightFlush) << valueShift
)

// NoEightLow is returned by the eight-or-better evaluators when no qualifying
// low exists. It compares greater than every other evaluator result.
const NoEightLow Strength = straightFlushValue + 1<<valueShift

// Category returns the hand category encoded in s.
func (s Strength) Category() Category {
	return Category(s >> valueShift)
}

// Rank returns the i-th significant rank nibble, counting from the left.
func (s Strength) Rank(i int) uint8 {
	return uint8(s>>(rankShift4-rankShift1*uint(i))) & 0xF
}

// String returns a debug representation such as "Flush 0x050C9863".
func (s Strength) String() string {
	if s == NoEightLow {
		return "No Low"
	}
	return fmt.Sprintf("%s 0x%08X", s.Category(), uint32(s))
}

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

var categoryCodes = [...]string{
	"NO_PAIR",
	"PAIR",
	"TWO_PAIR",
	"THREE_OF_A_KIND",
	"STRAIGHT",
	"FLUSH",
	"FULL_HOUSE",
	"FOUR_OF_A_KIND",
	"STRAIGHT_FLUSH",
}

// String returns the string representation of the category
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// Code returns the upper-case identifier used in hand histories.
func (c Category) Code() string {
	if int(c) < len(categoryCodes) {
		return categoryCodes[c]
	}
	return "UNKNOWN"
}
