package game

import (
	"slices"

	"github.com/lox/headsup/poker"
)

// Seat is one agent's place at the table. Stacks persist across hands; the
// other per-hand fields are reset by NewHand.
type Seat struct {
	Name  string
	Stack int
	// StartStack is the stack at the start of the current hand.
	StartStack int
	// Bet is what the seat has put in during the current betting round.
	Bet     int
	InHand  bool
	InMatch bool
	Hole    []poker.Card
	// Finish is the tournament finishing position, 0 while still playing.
	Finish   int
	GainLoss int
	// BlindPriority counts the hands played since the seat last paid the
	// big blind.
	BlindPriority int
}

// Live reports whether the seat still holds cards and chips.
func (s *Seat) Live() bool {
	return s.InHand && s.Stack > 0
}

// rotateBlinds moves the big blind to the next seat still in the match and
// places the small blind and button behind it. The small blind never moves
// backwards: when the seat behind the big blind would be the previous small
// blind, the small blind is dead this hand and the button may stay put.
func (s *State) rotateBlinds() {
	n := len(s.Seats)
	s.NoSmallBlind = false

	for {
		s.BigBlindSeat = (s.BigBlindSeat + 1) % n
		if s.Seats[s.BigBlindSeat].InMatch {
			break
		}
	}

	if s.PlayersAtStart <= 2 {
		for i, seat := range s.Seats {
			if seat.InMatch && i != s.BigBlindSeat {
				s.Button, s.SmallBlindSeat = i, i
				break
			}
		}
		return
	}

	seat := s.BigBlindSeat
	for {
		seat = (seat - 1 + n) % n
		if seat == s.SmallBlindSeat {
			s.NoSmallBlind = true
			seat = (seat + 1) % n
			break
		}
		if s.Seats[seat].InMatch {
			break
		}
	}
	s.SmallBlindSeat = seat

	for {
		seat = (seat - 1 + n) % n
		if s.Seats[seat].InMatch {
			break
		}
	}
	s.Button = seat
}

// BlindPost is a forced blind bet.
type BlindPost struct {
	Seat   int
	Amount int
}

// PostBlinds takes the small blind, unless it is dead this hand, and then the
// big blind. A seat that cannot cover its blind posts all-in for less.
func (s *State) PostBlinds() []BlindPost {
	var posts []BlindPost
	if !s.NoSmallBlind {
		posts = append(posts, BlindPost{Seat: s.SmallBlindSeat, Amount: s.placeBet(s.SmallBlindSeat, s.SmallBlind)})
	}
	posts = append(posts, BlindPost{Seat: s.BigBlindSeat, Amount: s.placeBet(s.BigBlindSeat, s.BigBlind)})

	for _, seat := range s.Seats {
		seat.BlindPriority++
	}
	s.Seats[s.BigBlindSeat].BlindPriority = 0
	return posts
}

// DealHole deals hole cards to every seat in the hand, starting with the
// small blind, and returns the seats in dealing order.
func (s *State) DealHole(deck *poker.Deck) []int {
	n := len(s.Seats)
	dealt := make([]int, 0, n)
	for i := range n {
		seat := (s.SmallBlindSeat + i) % n
		if !s.Seats[seat].InHand {
			continue
		}
		s.Seats[seat].Hole = deck.Deal(s.Variant.HoleCards())
		dealt = append(dealt, seat)
	}
	return dealt
}

// EndHand closes the books on a settled hand. Cash games record each seat's
// gain or loss and restore every stack. Tournaments drop busted seats from
// the match and return them in the order they were given finishing
// positions, worst first.
func (s *State) EndHand() []int {
	if !s.Variant.Tournament {
		for _, seat := range s.Seats {
			seat.GainLoss += seat.Stack - s.StartingStack
			seat.Stack = s.StartingStack
			seat.InMatch, seat.InHand = true, true
		}
		return nil
	}

	n := len(s.Seats)
	var eliminated []int
	for i, seat := range s.Seats {
		if seat.InMatch && seat.Stack > 0 {
			seat.InHand = true
			continue
		}
		seat.InHand, seat.InMatch = false, false
		if seat.Finish == 0 {
			eliminated = append(eliminated, i)
		}
	}

	// the smaller starting stack busts first; on equal stacks the seat nearer
	// the small blind does
	slices.SortStableFunc(eliminated, func(a, b int) int {
		if d := s.Seats[a].StartStack - s.Seats[b].StartStack; d != 0 {
			return d
		}
		return (a-s.SmallBlindSeat+n)%n - (b-s.SmallBlindSeat+n)%n
	})
	for _, seat := range eliminated {
		s.Seats[seat].Finish = n - s.finished
		s.finished++
	}

	if n-s.finished == 1 {
		for _, seat := range s.Seats {
			if seat.Finish == 0 {
				seat.Finish = 1
			}
		}
	}
	return eliminated
}

// Alive returns the number of seats still in the match.
func (s *State) Alive() int {
	count := 0
	for _, seat := range s.Seats {
		if seat.InMatch {
			count++
		}
	}
	return count
}

// Winner returns the seat that finished first, or -1 while the tournament is
// undecided or in a cash game.
func (s *State) Winner() int {
	for i, seat := range s.Seats {
		if seat.Finish == 1 {
			return i
		}
	}
	return -1
}
