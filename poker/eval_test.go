package poker

import (
	rand "math/rand/v2"
	"slices"
	"testing"

	ph "github.com/paulhankin/poker"
)

func mustHand(t testing.TB, s string) Hand {
	t.Helper()
	cards, err := ParseCards(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return NewHand(cards...)
}

func TestEvalDocumentedValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  Strength
	}{
		{"royal flush", "[Ah,Kh,Qh,Jh,Th]", 0x080C0000},
		{"steel wheel", "[Ad,2d,3d,4d,5d]", 0x08030000},
		{"wheel", "[Ad,2c,3d,4h,5s]", 0x04030000},
		{"broadway", "[Ad,Kc,Qd,Jh,Ts]", 0x040C0000},
		{"quad aces", "[Ad,Ac,Ah,As,Ks]", 0x070CB000},
		{"kings full of queens", "[Kd,Kc,Kh,Qs,Qh]", 0x060BA000},
		{"ace high flush", "[Ac,Kc,Qc,Jc,9c]", 0x050CBA97},
		{"trip sevens", "[7c,7d,7h,Ks,2h]", 0x0305B000},
		{"aces up", "[Ac,Ad,Kh,Ks,Qh]", 0x020CBA00},
		{"pair of kings", "[Kc,Kd,Ah,Qs,7h]", 0x010BCA50},
		{"ace high", "[Ac,Kd,Qh,Js,9h]", 0x000CBA97},
		{"seven card pair of kings", "[Ah,Kh,Kd,Qh,7c,3s,2h]", 0x010BCA50},
		{"seven card trip deuces", "[2c,2d,Kd,Qh,7c,3s,2h]", 0x0300BA00},
		{"seven card flush over straight", "[2h,3h,4h,5c,6d,9h,Kh]", 0x050B7210},
		{"seven card two trips", "[Ah,Ad,Ac,Kh,Kd,Kc,2s]", 0x060CB000},
		{"seven card three pairs", "[Ah,Ad,Kh,Kd,Qc,Qs,2s]", 0x020CBA00},
		{"seven card three pairs kicker", "[9h,9d,8h,8d,7c,7s,Ks]", 0x02076B00},
		{"seven card quads and trips", "[9h,9d,9c,9s,7c,7s,7d]", 0x07075000},
		{"seven card wheel with six", "[Ah,2d,3c,4s,5h,6d,Kh]", 0x04040000},
		{"seven card straight flush", "[9s,Ts,Js,Qs,Ks,2d,3d]", 0x080B0000},
		{"six card full house", "[2h,2d,2c,Kh,Kd,9s]", 0x0600B000},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Eval(mustHand(t, tc.cards))
			if got != tc.want {
				t.Errorf("Eval(%s) = %#08x, want %#08x", tc.cards, uint32(got), uint32(tc.want))
			}
		})
	}
}

func TestStrengthCategory(t *testing.T) {
	t.Parallel()
	h := mustHand(t, "[Ac,Kc,Qc,Jc,9c]")
	v := Eval5(h)
	if v.Category() != Flush {
		t.Errorf("category = %s, want Flush", v.Category())
	}
	if v.Category().Code() != "FLUSH" {
		t.Errorf("code = %s", v.Category().Code())
	}
	if v.Rank(0) != Ace || v.Rank(4) != Nine {
		t.Errorf("ranks = %d..%d", v.Rank(0), v.Rank(4))
	}
	if NoEightLow <= straightFlushValue|0xFFFFF {
		t.Error("NoEightLow must exceed every real value")
	}
}

// toReference converts a card to the independent evaluator's representation.
func toReference(c Card) ph.Card {
	suits := [...]ph.Suit{ph.Spade, ph.Heart, ph.Club, ph.Diamond}
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = ph.Rank(1)
	}
	card, err := ph.MakeCard(suits[c.Suit()], rank)
	if err != nil {
		panic(err)
	}
	return card
}

// TestEval5MatchesReferenceOrdering checks every five-card hand against an
// independent evaluator. The two value spaces differ, so the check is that
// they induce the same equivalence classes and a monotone ordering.
func TestEval5MatchesReferenceOrdering(t *testing.T) {
	t.Parallel()

	var ref [NumCards]ph.Card
	for c := range Card(NumCards) {
		ref[c] = toReference(c)
	}

	ours := make(map[Strength]int16, 7462)
	theirs := make(map[int16]Strength, 7462)
	var five [5]ph.Card
	for a := Card(0); a < NumCards; a++ {
		for b := a + 1; b < NumCards; b++ {
			for c := b + 1; c < NumCards; c++ {
				for d := c + 1; d < NumCards; d++ {
					for e := d + 1; e < NumCards; e++ {
						v := Eval5(NewHand(a, b, c, d, e))
						five = [5]ph.Card{ref[a], ref[b], ref[c], ref[d], ref[e]}
						r := ph.Eval5(&five)
						if prev, ok := ours[v]; ok && prev != r {
							t.Fatalf("%v: value %#08x maps to two reference classes", []Card{a, b, c, d, e}, uint32(v))
						}
						if prev, ok := theirs[r]; ok && prev != v {
							t.Fatalf("%v: reference class %d maps to %#08x and %#08x", []Card{a, b, c, d, e}, r, uint32(prev), uint32(v))
						}
						ours[v] = r
						theirs[r] = v
					}
				}
			}
		}
	}

	if len(ours) != 7462 {
		t.Errorf("found %d distinct values, want 7462", len(ours))
	}

	values := make([]Strength, 0, len(ours))
	for v := range ours {
		values = append(values, v)
	}
	slices.Sort(values)

	ascending := ours[values[len(values)-1]] > ours[values[0]]
	for i := 1; i < len(values); i++ {
		lo, hi := ours[values[i-1]], ours[values[i]]
		if ascending != (hi > lo) {
			t.Fatalf("ordering differs between %#08x and %#08x", uint32(values[i-1]), uint32(values[i]))
		}
	}
}

// bestSubset evaluates every five-card subset of cards with eval and keeps
// the value preferred by better.
func bestSubset(cards []Card, eval func(Hand) Strength, better func(a, b Strength) bool) Strength {
	n := len(cards)
	var best Strength
	first := true
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						v := eval(NewHand(cards[a], cards[b], cards[c], cards[d], cards[e]))
						if first || better(v, best) {
							best, first = v, false
						}
					}
				}
			}
		}
	}
	return best
}

func preferHigh(a, b Strength) bool { return a > b }
func preferLow(a, b Strength) bool  { return a < b }

func TestEval6MatchesBestSubset(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("exhaustive six-card check")
	}
	cards := make([]Card, 6)
	for a := Card(0); a < NumCards; a++ {
		for b := a + 1; b < NumCards; b++ {
			for c := b + 1; c < NumCards; c++ {
				for d := c + 1; d < NumCards; d++ {
					for e := d + 1; e < NumCards; e++ {
						for f := e + 1; f < NumCards; f++ {
							cards[0], cards[1], cards[2], cards[3], cards[4], cards[5] = a, b, c, d, e, f
							got := Eval6(NewHand(cards...))
							want := bestSubset(cards, Eval5, preferHigh)
							if got != want {
								t.Fatalf("Eval6(%v) = %#08x, best subset %#08x", cards, uint32(got), uint32(want))
							}
						}
					}
				}
			}
		}
	}
}

func TestEval7MatchesBestSubset(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("exhaustive seven-card check")
	}
	cards := make([]Card, 7)
	var hand [8]Hand
	var idx [7]Card
	var walk func(depth int, from Card)
	walk = func(depth int, from Card) {
		if depth == 7 {
			copy(cards, idx[:])
			got := Eval7(hand[7])
			want := bestSubset(cards, Eval5, preferHigh)
			if got != want {
				t.Fatalf("Eval7(%v) = %#08x, best subset %#08x", cards, uint32(got), uint32(want))
			}
			return
		}
		for c := from; c <= NumCards-Card(7-depth); c++ {
			idx[depth] = c
			hand[depth+1] = hand[depth] | c.Mask()
			walk(depth+1, c+1)
		}
	}
	walk(0, 0)
}

func TestEval7RandomHands(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(2024, 7))
	for range 200000 {
		deck := NewDeck(rng)
		cards := deck.Deal(7)
		got := Eval7(NewHand(cards...))
		want := bestSubset(cards, Eval5, preferHigh)
		if got != want {
			t.Fatalf("Eval7(%v) = %#08x, best subset %#08x", cards, uint32(got), uint32(want))
		}
		if six := Eval6(NewHand(cards[:6]...)); six != bestSubset(cards[:6], Eval5, preferHigh) {
			t.Fatalf("Eval6(%v) = %#08x", cards[:6], uint32(six))
		}
	}
}

func TestTablesImmutableAfterInit(t *testing.T) {
	t.Parallel()
	fresh := buildRankTables()
	if *fresh != *tab {
		t.Fatal("rebuilding the tables produced different contents")
	}
	// a mask holding both the wheel and a six-high straight keeps the higher one
	if got := tab.straight[0x100F|0x0010]; got != straightValue|Strength(Six)<<rankShift4 {
		t.Errorf("A23456 straight = %#08x", uint32(got))
	}
	if got := tab.straight[0x100F]; got != wheelValue {
		t.Errorf("wheel = %#08x", uint32(got))
	}
}

func BenchmarkEval7(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	hands := make([]Hand, 1024)
	for i := range hands {
		hands[i] = NewHand(NewDeck(rng).Deal(7)...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Eval7(hands[i&1023])
	}
}

func BenchmarkEval5(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	hands := make([]Hand, 1024)
	for i := range hands {
		hands[i] = NewHand(NewDeck(rng).Deal(5)...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Eval5(hands[i&1023])
	}
}
