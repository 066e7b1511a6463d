package equity

import (
	rand "math/rand/v2"
	"slices"
	"testing"

	"github.com/lox/headsup/poker"
)

func mustCards(t *testing.T, s string) []poker.Card {
	t.Helper()
	cards, err := poker.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return cards
}

func deckWithout(seed uint64, cards ...[]poker.Card) *poker.Deck {
	var used poker.Hand
	for _, c := range cards {
		used |= poker.NewHand(c...)
	}
	return poker.NewDeckWithout(rand.New(rand.NewPCG(seed, seed)), used)
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		permille int
		want     string
	}{
		{290, "29.0"},
		{5, "0.5"},
		{0, "0.0"},
		{1000, "100.0"},
		{10, "1.0"},
		{333, "33.3"},
	}
	for _, tc := range tests {
		if got := FormatPercent(tc.permille); got != tc.want {
			t.Errorf("FormatPercent(%d) = %q, want %q", tc.permille, got, tc.want)
		}
	}
}

func TestPermilleRoundsHalfUp(t *testing.T) {
	t.Parallel()

	live := []bool{true, true, false}
	if got := Permille([]int{1, 1, 7}, live); !slices.Equal(got, []int{500, 500, 0}) {
		t.Errorf("Permille = %v", got)
	}
	// 1/8 is 125 permille exactly, 1/16 is 62.5 and rounds up
	if got := Permille([]int{1, 15, 0}, live); !slices.Equal(got, []int{63, 938, 0}) {
		t.Errorf("Permille = %v", got)
	}
	if got := Permille([]int{0, 0, 0}, live); !slices.Equal(got, []int{0, 0, 0}) {
		t.Errorf("Permille without wins = %v", got)
	}
}

func TestEstimateCompleteBoardRunsOnce(t *testing.T) {
	t.Parallel()

	hands := [][]poker.Card{mustCards(t, "[Ah,Kh]"), mustCards(t, "[2c,2d]")}
	board := mustCards(t, "[Kd,Qh,7c,3s,2h]")
	deck := deckWithout(1, board, hands[0], hands[1])
	before := deck.CardsRemaining()

	wins := New().Tally(deck, board, hands, []bool{true, true})
	if !slices.Equal(wins, []int{0, 1}) {
		t.Errorf("Tally = %v, want a single trial won by the deuces", wins)
	}
	if got := New().Estimate(deck, board, hands, []bool{true, true}); !slices.Equal(got, []int{0, 1000}) {
		t.Errorf("Estimate = %v", got)
	}
	if deck.CardsRemaining() != before {
		t.Errorf("deck has %d cards, want %d restored", deck.CardsRemaining(), before)
	}
}

func TestEstimateFoldedSeatsGetNothing(t *testing.T) {
	t.Parallel()

	hands := [][]poker.Card{mustCards(t, "[As,Ad]"), mustCards(t, "[7c,2h]"), mustCards(t, "[Kc,Kd]")}
	deck := deckWithout(2, hands...)
	got := New(WithTrials(200)).Estimate(deck, nil, hands, []bool{true, true, false})
	if got[2] != 0 {
		t.Errorf("folded seat got %d", got[2])
	}
	if got[0] < 750 {
		t.Errorf("aces against seven-deuce = %d permille, want a heavy favourite", got[0])
	}
	if sum := got[0] + got[1]; sum < 999 || sum > 1001 {
		t.Errorf("shares sum to %d", sum)
	}
}

func TestEstimateIsDeterministicForASeed(t *testing.T) {
	t.Parallel()

	hands := [][]poker.Card{mustCards(t, "[Qs,Js]"), mustCards(t, "[8d,8c]")}
	board := mustCards(t, "[Ts,9h,2s]")
	run := func() []int {
		return New(WithTrials(500)).Tally(deckWithout(7, board, hands[0], hands[1]), board, hands, []bool{true, true})
	}
	if a, b := run(), run(); !slices.Equal(a, b) {
		t.Errorf("tallies differ: %v vs %v", a, b)
	}
}

// Win tallies are a sum over independent boards, so the order the boards are
// scored in does not matter.
func TestTallyIsOrderIndependent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 5))
	hands := [][]poker.Card{mustCards(t, "[Ah,Kd]"), mustCards(t, "[9c,9d]"), mustCards(t, "[5s,6s]")}
	live := []bool{true, true, true}
	deck := deckWithout(11, hands...)

	var boards [][]poker.Card
	deck.Save()
	for range 300 {
		boards = append(boards, deck.Deal(5))
		deck.Restore()
	}

	e := New()
	forward := make([]int, len(hands))
	for _, b := range boards {
		e.credit(forward, b, hands, live)
	}
	rng.Shuffle(len(boards), func(i, j int) { boards[i], boards[j] = boards[j], boards[i] })
	shuffled := make([]int, len(hands))
	for _, b := range boards {
		e.credit(shuffled, b, hands, live)
	}
	if !slices.Equal(forward, shuffled) {
		t.Errorf("tallies %v and %v differ", forward, shuffled)
	}
}

func TestEstimateOmahaEvaluator(t *testing.T) {
	t.Parallel()

	omaha := func(hole, board []poker.Card) poker.Strength { return poker.EvalOmaha(hole, board) }
	hands := [][]poker.Card{mustCards(t, "[Ah,Kh,2c,3d]"), mustCards(t, "[9s,9c,4d,5d]")}
	// one heart on the hole side is not enough; two are
	board := mustCards(t, "[Qh,Jh,2h,8s,9d]")
	deck := deckWithout(4, board, hands[0], hands[1])
	got := New(WithEvaluator(omaha)).Estimate(deck, board, hands, []bool{true, true})
	if !slices.Equal(got, []int{1000, 0}) {
		t.Errorf("Estimate = %v, want the nut flush to win", got)
	}
}
