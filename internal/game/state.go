package game

import (
	"github.com/lox/headsup/poker"
)

// State is the table and betting state of a match. It is driven by a single
// goroutine: NewHand, PostBlinds and DealHole start a hand, then each
// betting round runs StartRound followed by Next/Apply until Next reports
// the round closed, and AdvanceStreet moves on until it returns false.
type State struct {
	Variant       Variant
	Seats         []*Seat
	StartingStack int
	HandsPerLevel int
	Level         int
	SmallBlind    int
	BigBlind      int

	HandNumber int
	Street     Street
	Board      []poker.Card

	Button         int
	SmallBlindSeat int
	BigBlindSeat   int
	NoSmallBlind   bool
	PlayersAtStart int

	Active         int
	LastToAct      int
	LastToMayRaise int
	AllowedToRaise bool
	MinRaise       int
	CurrentRaise   int
	MaxRaise       int

	pot      *Pot
	finished int

	// betting round iteration
	open  bool
	acted bool
}

// Option configures a State during creation.
type Option func(*stateConfig)

type stateConfig struct {
	stacks        []int
	handsPerLevel int
	small, big    int
}

// WithStacks sets individual starting stacks, one per seat.
func WithStacks(stacks ...int) Option {
	return func(c *stateConfig) {
		c.stacks = stacks
	}
}

// WithBlinds overrides the blinds of the first level.
func WithBlinds(small, big int) Option {
	return func(c *stateConfig) {
		c.small, c.big = small, big
	}
}

// WithHandsPerLevel sets how many tournament hands are played before the
// blinds rise. Zero keeps the blinds fixed.
func WithHandsPerLevel(hands int) Option {
	return func(c *stateConfig) {
		c.handsPerLevel = hands
	}
}

// NewState seats the named agents, each with startingStack chips unless
// WithStacks says otherwise. The big blind marker starts on the last seat
// so the first hand puts it on seat 0.
func NewState(v Variant, names []string, startingStack int, opts ...Option) *State {
	cfg := &stateConfig{handsPerLevel: 10}
	cfg.small, cfg.big = BlindsForLevel(0)
	for _, opt := range opts {
		opt(cfg)
	}

	seats := make([]*Seat, len(names))
	for i, name := range names {
		stack := startingStack
		if i < len(cfg.stacks) {
			stack = cfg.stacks[i]
		}
		seats[i] = &Seat{
			Name:          name,
			Stack:         stack,
			StartStack:    stack,
			InHand:        true,
			InMatch:       true,
			BlindPriority: 1000,
		}
	}

	return &State{
		Variant:        v,
		Seats:          seats,
		StartingStack:  startingStack,
		HandsPerLevel:  cfg.handsPerLevel,
		SmallBlind:     cfg.small,
		BigBlind:       cfg.big,
		Button:         -1,
		SmallBlindSeat: -1,
		BigBlindSeat:   len(names) - 1,
		pot:            NewPot(len(names)),
	}
}

// NewHand starts the next hand: tournament blinds rise when a level is
// complete, the pot and board are cleared and the button and blinds rotate.
func (s *State) NewHand() {
	if s.Variant.Tournament && s.HandsPerLevel > 0 &&
		s.HandNumber == (s.Level+1)*s.HandsPerLevel && s.Level < MaxBlindLevel {
		s.Level++
		s.SmallBlind, s.BigBlind = BlindsForLevel(s.Level)
	}

	s.HandNumber++
	s.Street = Preflop
	s.Board = nil
	s.pot = NewPot(len(s.Seats))
	s.open = false
	for _, seat := range s.Seats {
		seat.StartStack = seat.Stack
		seat.Bet = 0
		seat.Hole = nil
		seat.InHand = seat.InMatch
	}
	s.PlayersAtStart = s.Alive()
	s.rotateBlinds()
}

// PotTotal returns every chip put in this hand.
func (s *State) PotTotal() int {
	return s.pot.Total()
}

// Contribution returns what a seat has put in this hand.
func (s *State) Contribution(seat int) int {
	return s.pot.Contribution(seat)
}

// Pots returns the main pot and side pots as they stand for the seats still
// holding cards.
func (s *State) Pots() []Layer {
	return s.pot.Layers(s.Contenders())
}

// Contenders returns the seats still holding cards.
func (s *State) Contenders() []int {
	var seats []int
	for i, seat := range s.Seats {
		if seat.InHand {
			seats = append(seats, i)
		}
	}
	return seats
}

func (s *State) inHand() int {
	count := 0
	for _, seat := range s.Seats {
		if seat.InHand {
			count++
		}
	}
	return count
}

func (s *State) live() int {
	count := 0
	for _, seat := range s.Seats {
		if seat.Live() {
			count++
		}
	}
	return count
}

func (s *State) placeBet(seat, chips int) int {
	st := s.Seats[seat]
	chips = min(chips, st.Stack)
	st.Stack -= chips
	st.Bet += chips
	s.pot.Record(seat, chips)
	return chips
}

// StartRound prepares the current street's betting round and reports
// whether any agent has a decision to make. The minimum raise resets to one
// big blind. Preflop the seat after the big blind acts first and the big
// blind closes the action; later streets open at the small blind (the big
// blind heads-up) and close at the button.
func (s *State) StartRound() bool {
	s.LastToMayRaise = -1
	s.AllowedToRaise = true
	s.MinRaise = s.BigBlind
	s.open, s.acted = false, false

	inHand, live := s.inHand(), s.live()
	if inHand < 2 || live == 0 {
		return false
	}

	if s.Street == Preflop {
		s.Active = s.BigBlindSeat
		s.advance()
		s.LastToAct = s.BigBlindSeat
		s.LastToMayRaise = s.LastToAct

		s.CurrentRaise = 0
		for _, seat := range s.Seats {
			s.CurrentRaise = max(s.CurrentRaise, seat.Bet)
		}

		if inHand == 2 && live == 1 {
			// a blind is all-in: the small blind only acts when the big
			// blind put in more than a small blind
			if s.Seats[s.SmallBlindSeat].Stack == 0 || s.Seats[s.BigBlindSeat].Bet <= s.SmallBlind {
				return false
			}
			s.LastToAct = s.Button
			s.LastToMayRaise = s.LastToAct
		}
	} else {
		if live == 1 {
			return false
		}
		if s.PlayersAtStart == 2 {
			s.Active = s.BigBlindSeat
		} else {
			s.Active = s.SmallBlindSeat
		}
		s.LastToAct = s.Button
		s.LastToMayRaise = s.LastToAct
		s.CurrentRaise = 0
		for _, seat := range s.Seats {
			seat.Bet = 0
		}
	}

	s.open = true
	return true
}

// Next returns the next seat that must act in the current round. Seats that
// folded, are all-in, or are the last live seat with nothing to call are
// passed over. It returns false once the round is closed.
func (s *State) Next() (int, bool) {
	for s.open {
		if s.acted {
			if s.LastToAct == s.Active || s.inHand() < 2 {
				s.open = false
				break
			}
			s.advance()
		}
		s.acted = true
		if s.mustAct(s.Active) {
			return s.Active, true
		}
	}
	return -1, false
}

func (s *State) mustAct(seat int) bool {
	if !s.Seats[seat].Live() {
		return false
	}
	return s.AmountToCall(seat) > 0 || s.live() > 1
}

// advance passes the action to the next seat. Once the last seat allowed to
// raise has been passed, nobody may raise until a full raise reopens the
// action.
func (s *State) advance() {
	if s.AllowedToRaise && len(s.Seats) > 2 && s.LastToMayRaise == s.Active {
		s.AllowedToRaise = false
	}
	s.Active = (s.Active + 1) % len(s.Seats)
}

// closeActionBefore makes the seat before the raiser the last to act. A full
// raise also makes it the last seat allowed to raise.
func (s *State) closeActionBefore(raiser int, reopen bool) {
	s.LastToAct = (raiser - 1 + len(s.Seats)) % len(s.Seats)
	if reopen {
		s.LastToMayRaise = s.LastToAct
	}
}

// AmountToCall returns what a seat must add to match the current bet. With
// more than two seats in the hand preflop the call is never less than the
// big blind, even if the big blind was posted short.
func (s *State) AmountToCall(seat int) int {
	bet := s.Seats[seat].Bet
	if s.Street == Preflop && s.inHand() > 2 && s.CurrentRaise < s.BigBlind {
		return s.BigBlind - bet
	}
	return s.CurrentRaise - bet
}

// PreMove returns what is announced to a seat before it is asked to act:
// the largest pot it can win and what it has to call, both limited by its
// stack.
func (s *State) PreMove(seat int) (maxWinPot, toCall int) {
	toCall = s.AmountToCall(seat)
	if stack := s.Seats[seat].Stack; stack < toCall {
		return s.pot.MaxPotToWin(seat, stack), stack
	}
	return s.pot.Total(), toCall
}

// AdvanceStreet deals the next street: three cards for the flop, one for
// the turn and river. It returns false when the river has been played.
func (s *State) AdvanceStreet(deck *poker.Deck) bool {
	if s.Street == River {
		return false
	}
	s.Street++
	count := 1
	if s.Street == Flop {
		count = 3
	}
	s.Board = append(s.Board, deck.Deal(count)...)
	return true
}

// Showdown reports whether more than one seat still holds cards.
func (s *State) Showdown() bool {
	return s.inHand() >= 2
}

// Strengths scores every contender's hand. Without a showdown the lone
// contender is given a nominal strength; it wins uncontested.
func (s *State) Strengths() map[int]poker.Strength {
	contenders := s.Contenders()
	out := make(map[int]poker.Strength, len(contenders))
	for _, seat := range contenders {
		if len(contenders) < 2 {
			out[seat] = 1
			continue
		}
		out[seat] = s.Variant.Evaluate(s.Seats[seat].Hole, s.Board)
	}
	return out
}

// Settle pays out the pot by the given strengths, using the button fixed at
// the start of the hand for odd chips, and credits the winnings to stacks.
func (s *State) Settle(strengths map[int]poker.Strength) Settlement {
	out := s.pot.Settle(strengths, s.Button)
	for seat, won := range out.Won {
		s.Seats[seat].Stack += won
	}
	return out
}
