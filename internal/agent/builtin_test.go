package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

func TestBuiltinAnswersActionRequests(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, err := NewBuiltin(ctx, CallingStation, randutil.New(1), DefaultConfig())
	require.NoError(t, err)
	defer a.Close()

	for _, line := range []string{
		"Settings your_bot player2",
		"Match round 1",
		"player2 hand [7c,2d]",
		"Match maxWinPot 30",
		"Match amountToCall 10",
	} {
		require.NoError(t, a.Send(line))
	}

	got, _ := a.RequestAction(ctx, "player2")
	assert.Equal(t, "call 0", got)
}

func TestBuiltinUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := NewBuiltin(context.Background(), "shark", randutil.New(1), DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownBuiltin)
}

func TestViewObserve(t *testing.T) {
	t.Parallel()

	v := &view{bigBlind: 20}
	for _, line := range []string{
		"Settings your_bot player1",
		"Match round 3",
		"Match bigBlind 40",
		"player1 hand [Ah,Ad]",
		"player2 hand [Kh,Kd]",
		"Match table [2c,3c,4c]",
		"Match maxWinPot 80",
		"Match amountToCall 40",
		"player1 raise 40",
	} {
		assert.False(t, v.observe(line), line)
	}

	assert.Equal(t, "player1", v.name)
	assert.Equal(t, 40, v.bigBlind)
	assert.Equal(t, "[Ah,Ad]", poker.FormatCards(v.hole))
	assert.Len(t, v.board, 3)
	assert.Equal(t, 80, v.maxWinPot)
	assert.Equal(t, 40, v.toCall)

	assert.False(t, v.observe("Action player2 10000"))
	assert.True(t, v.observe("Action player1 10000"))
}

func TestStrategies(t *testing.T) {
	t.Parallel()

	hole := func(s string) []poker.Card {
		cards, err := poker.ParseCards(s)
		require.NoError(t, err)
		return cards
	}

	tests := []struct {
		name  string
		play  strategy
		state view
		want  string
	}{
		{"calling station checks", callingStation, view{toCall: 0}, "check 0"},
		{"calling station calls", callingStation, view{toCall: 30}, "call 0"},
		{"raiser bets the pot", raiser, view{bigBlind: 20, maxWinPot: 120}, "raise 120"},
		{"raiser opens for a big blind", raiser, view{bigBlind: 20, maxWinPot: 5}, "raise 20"},
		{"chart shoves aces", chart, view{bigBlind: 20, hole: hole("[As,Ah]")}, "raise 1000000"},
		{"chart folds trash to a bet", chart, view{bigBlind: 20, toCall: 10, hole: hole("[7c,2d]")}, "fold 0"},
		{"chart checks trash for free", chart, view{bigBlind: 20, hole: hole("[7c,2d]")}, "check 0"},
		{"chart check-calls after the flop", chart, view{bigBlind: 20, toCall: 50, hole: hole("[7c,2d]"), board: hole("[Ah,Kh,Qh]")}, "call 0"},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := tc.state
			assert.Equal(t, tc.want, tc.play(&v, randutil.New(1)))
		})
	}
}
