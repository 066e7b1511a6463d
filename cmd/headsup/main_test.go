package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/history"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/poker"
)

func TestMatchFlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	seed := int64(99)
	cfg := match.DefaultConfig()
	MatchFlags{GameCode: 16, Hands: 50, Seed: &seed}.apply(cfg)

	assert.Equal(t, 16, cfg.Match.GameCode)
	assert.Equal(t, 50, cfg.Match.MaxHands)
	assert.Equal(t, int64(99), cfg.Match.Seed)

	cfg = match.DefaultConfig()
	MatchFlags{}.apply(cfg)
	assert.Equal(t, match.DefaultConfig(), cfg)
}

func TestOpenSink(t *testing.T) {
	t.Parallel()

	sink, err := openSink(context.Background(), MatchFlags{}, "id")
	require.NoError(t, err)
	assert.Equal(t, history.Discard, sink)

	path := filepath.Join(t.TempDir(), "history.txt")
	sink, err = openSink(context.Background(), MatchFlags{History: path}, "id")
	require.NoError(t, err)
	assert.IsType(t, &history.FileSink{}, sink)
}

func TestEvalScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		low     string
		cards   string
		want    poker.Category
		wantErr bool
	}{
		{"", "[Ah,Kh,Qh,Jh,Th]", poker.StraightFlush, false},
		{"", "[Ah,Ad,Kc,Ks,2d,3c,9h]", poker.TwoPair, false},
		{"", "[Ah,Kh]", 0, true},
		{"razz", "[Ah,2d,3c,4s,5h]", 0, true},
		{"a5", "[Ah,2d,3c,4s,5h]", poker.NoPair, false},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.low+tc.cards, func(t *testing.T) {
			t.Parallel()
			cards, err := poker.ParseCards(tc.cards)
			require.NoError(t, err)
			s, err := (&EvalCmd{Low: tc.low}).score(poker.NewHand(cards...))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Category())
		})
	}
}
