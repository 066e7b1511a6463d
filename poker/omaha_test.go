package poker

import (
	"math/bits"
	rand "math/rand/v2"
	"testing"
)

// bruteOmahaLowMask returns the smallest five-rank low mask made from exactly
// the two hole ranks and three distinct board ranks, working purely in
// ace-low rank space.
func bruteOmahaLowMask(r1, r2 int, boardMask uint32) Strength {
	best := NoEightLow
	var boardRanks []int
	for r := range 13 {
		if boardMask&(1<<r) != 0 {
			boardRanks = append(boardRanks, r)
		}
	}
	for a := 0; a < len(boardRanks); a++ {
		for b := a + 1; b < len(boardRanks); b++ {
			for c := b + 1; c < len(boardRanks); c++ {
				m := uint32(1)<<r1 | uint32(1)<<r2 | 1<<boardRanks[a] | 1<<boardRanks[b] | 1<<boardRanks[c]
				if bits.OnesCount32(m) == 5 && m < 0x100 && Strength(m) < best {
					best = Strength(m)
				}
			}
		}
	}
	return best
}

// TestOmahaEightLowShortCircuitExhaustive walks every board rank set of up to
// five ranks and every hole rank pair, and checks that both the board
// rejection and the hole filter agree with brute force.
func TestOmahaEightLowShortCircuitExhaustive(t *testing.T) {
	t.Parallel()
	for boardMask := uint32(1); boardMask < 1<<13; boardMask++ {
		if bits.OnesCount32(boardMask) > 5 {
			continue
		}
		rejected := tab.lo3[boardMask] == 0
		for r1 := range 13 {
			for r2 := r1; r2 < 13; r2++ {
				want := bruteOmahaLowMask(r1, r2, boardMask)
				if rejected {
					if want != NoEightLow {
						t.Fatalf("board %#x rejected but hole %d,%d makes %#x", boardMask, r1, r2, uint32(want))
					}
					continue
				}
				two := uint32(1)<<r1 | uint32(1)<<r2
				if two&^0xFF != 0 {
					// a hole card above eight never plays
					if want != NoEightLow {
						t.Fatalf("hole %d,%d above eight makes %#x", r1, r2, uint32(want))
					}
					continue
				}
				if got := omahaLowMask(two, boardMask); got != want {
					t.Fatalf("board %#x hole %d,%d: got %#x want %#x", boardMask, r1, r2, uint32(got), uint32(want))
				}
			}
		}
	}
}

func TestOmahaEightLowMatchesBruteForce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(4, 4))
	for range 50000 {
		deck := NewDeck(rng)
		hole := deck.Deal(4)
		board := deck.Deal(5)

		want := NoEightLow
		for _, hp := range omahaHolePairs {
			for _, bt := range omahaBoardTriples {
				h := NewHand(hole[hp[0]], hole[hp[1]], board[bt[0]], board[bt[1]], board[bt[2]])
				if v := EvalEightLow(h); v < want {
					want = v
				}
			}
		}
		if got := OmahaEightLow(NewHand(hole...), NewHand(board...)); got != want {
			t.Fatalf("OmahaEightLow(%v, %v) = %#08x, want %#08x", hole, board, uint32(got), uint32(want))
		}
	}
}

func TestEvalOmaha(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		hole  string
		board string
		want  Category
	}{
		{"one hole heart is no flush", "[Ah,Ks,Qd,2c]", "[3h,7h,9h,Jh,4s]", NoPair},
		{"two hole hearts make a flush", "[Ah,Kh,Qd,2c]", "[3h,7h,9h,Jd,4s]", Flush},
		{"four to a straight on board", "[Ah,Kd,2c,2d]", "[9h,Tc,Jh,Qs,3d]", Straight},
		{"board quads play as a full house", "[Kh,Ks,2c,3d]", "[As,Ac,Ad,Ah,Kd]", FullHouse},
	}
	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hole, _ := ParseCards(tc.hole)
			board, _ := ParseCards(tc.board)
			if got := EvalOmaha(hole, board).Category(); got != tc.want {
				t.Errorf("EvalOmaha = %s, want %s", got, tc.want)
			}
		})
	}

	rng := rand.New(rand.NewPCG(6, 1))
	for range 20000 {
		deck := NewDeck(rng)
		hole := deck.Deal(4)
		board := deck.Deal(5)
		got := EvalOmaha(hole, board)
		if free := bestSubset(append(hole, board...), Eval5, preferHigh); got > free {
			t.Fatalf("Omaha value %#08x exceeds the unrestricted best %#08x", uint32(got), uint32(free))
		}
	}
}
