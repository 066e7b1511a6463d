package game

// Reasons given when a move is altered before it is applied.
const (
	ReasonNotReopened    = "The action is not re-opened to your bot"
	ReasonOthersAllIn    = "Other involved players are already all-in"
	ReasonNothingToCall  = "There is no bet to call"
	ReasonBetToCall      = "Other player did make a bet"
	ReasonBelowMinimum   = "Raise is below minimum amount"
	ReasonAboveMaximum   = "Raise is above maximum amount"
	ReasonBelowCallLevel = "Raise is below amount to call"
)

// Apply normalizes a seat's move against the betting rules and applies it.
//
// A raise turns into a call when the action has not been reopened to the
// seat or when every other contender is all-in. A call with nothing to call
// is a check and a check facing a bet is a fold. Raises are lifted to the
// minimum raise, capped at pot size in pot-limit games and limited by the
// stack; an all-in that does not exceed the call is a call. Any other word
// folds.
func (s *State) Apply(seat int, m Move) Applied {
	st := s.Seats[seat]
	toCall := s.AmountToCall(seat)
	a := Applied{Seat: seat, Original: m, Action: m.Action, Amount: m.Amount}

	switch {
	case a.Action == Raise:
		if !s.AllowedToRaise && toCall < s.MinRaise {
			a.Action = Call
			a.correct(ReasonNotReopened, "raise action changed to 'call'")
		}
		if !s.othersLive(seat) {
			a.Action = Call
			a.correct(ReasonOthersAllIn, "raise action changed to 'call'")
		}
	case a.Action == Call && toCall == 0:
		a.Action = Check
		a.correct(ReasonNothingToCall, "call action changed to 'check'")
	case a.Action == Check && toCall > 0:
		a.Action = Fold
		a.correct(ReasonBetToCall, "check action changed to 'fold'")
	}

	switch a.Action {
	case Raise:
		s.applyRaise(seat, toCall, &a)
	case Call:
		a.Amount = s.placeBet(seat, toCall)
	case Check:
		a.Amount = 0
	default:
		a.Action = Fold
		a.Amount = 0
		st.InHand = false
	}

	switch a.Action {
	case Call:
		a.Extra = toCall
	case Raise:
		a.Extra = a.Amount
	}
	a.Bet = st.Bet
	return a
}

func (s *State) applyRaise(seat, toCall int, a *Applied) {
	st := s.Seats[seat]
	raise := a.Amount
	if raise < s.MinRaise {
		raise = s.MinRaise
		if st.Stack >= toCall+s.MinRaise {
			a.correct(ReasonBelowMinimum, "automatically changed to minimum")
		} else {
			a.correct(ReasonBelowMinimum, "automatically put all-in because remaining stack is lower than minimum amount")
		}
	}

	if s.Variant.Limit == PotLimit {
		s.MaxRaise = s.pot.Total() + toCall
		if raise > s.MaxRaise {
			raise = s.MaxRaise
			a.correct(ReasonAboveMaximum, "automatically changed to maximum")
		}
	}

	placed := s.placeBet(seat, toCall+raise)
	if placed <= toCall {
		a.Action = Call
		a.Amount = placed
		a.correct(ReasonBelowCallLevel, "action automatically changed to 'call'")
		return
	}

	s.CurrentRaise = st.Bet
	a.Amount = placed - toCall
	if a.Amount >= s.MinRaise {
		s.MinRaise = a.Amount
		s.closeActionBefore(seat, true)
	} else {
		s.closeActionBefore(seat, false)
	}
}

// othersLive reports whether any other seat in the hand can still bet.
func (s *State) othersLive(seat int) bool {
	for i, other := range s.Seats {
		if i != seat && other.Live() {
			return true
		}
	}
	return false
}
