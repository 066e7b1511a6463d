package agent

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoBot answers every action request with "call 0".
const echoBot = `while read -r line; do
  case "$line" in
    Action*) echo "call 0" ;;
  esac
done`

func startShell(t *testing.T, script string, cfg Config) *ProcessAgent {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	p, err := StartProcess(ctx, "sh", []string{"-c", script}, map[string]string{"HEADSUP_TEST": "1"}, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestProcessAnswersActionRequests(t *testing.T) {
	t.Parallel()

	p := startShell(t, echoBot, DefaultConfig())
	require.NoError(t, p.Send("Settings your_bot player1"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	response, _ := p.RequestAction(ctx, "player1")
	assert.Equal(t, "call 0", response)
	assert.Zero(t, p.Timeouts())
	assert.Len(t, p.ID, 8)
}

func TestProcessExitCountsAsTimeout(t *testing.T) {
	t.Parallel()

	p := startShell(t, "exit 0", DefaultConfig())
	require.NoError(t, p.Wait())
	assert.False(t, p.Alive())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	response, _ := p.RequestAction(ctx, "player1")
	assert.Empty(t, response)
	assert.Equal(t, 1, p.Timeouts())
}

func TestProcessCloseStopsIt(t *testing.T) {
	t.Parallel()

	p := startShell(t, "exec sleep 30", DefaultConfig())
	require.True(t, p.Alive())
	require.NoError(t, p.Close())
	assert.False(t, p.Alive())
	assert.ErrorIs(t, p.Send("Match round 1"), ErrClosed)
}

func TestReadLinesDropsOverLongLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		limit   int
		want    []string
		dropped []int
	}{
		{
			name:  "short lines pass through",
			input: "call 0\r\nraise 40\n",
			limit: 100,
			want:  []string{"call 0", "raise 40"},
		},
		{
			name:    "over-long line is skipped and reading continues",
			input:   strings.Repeat("x", 101) + "\ncall 0\n",
			limit:   100,
			want:    []string{"call 0"},
			dropped: []int{101},
		},
		{
			name:  "line longer than the read buffer but under the limit",
			input: strings.Repeat("y", 200_000) + "\ncheck 0",
			limit: maxBuffered,
			want:  []string{strings.Repeat("y", 200_000), "check 0"},
		},
		{
			name:    "line far beyond the limit",
			input:   strings.Repeat("z", 300_000) + "\nfold 0\n",
			limit:   100_000,
			want:    []string{"fold 0"},
			dropped: []int{300_000},
		},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			var dropped []int
			err := readLines(strings.NewReader(tc.input), tc.limit,
				func(s string) { got = append(got, s) },
				func(n int) { dropped = append(dropped, n) })
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.dropped, dropped)
		})
	}
}
