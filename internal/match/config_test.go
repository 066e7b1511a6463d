package match

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/agent"
	"github.com/lox/headsup/internal/game"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
match "omaha-cash" {
  game_code   = 19
  max_hands   = 250
  timebank_ms = 5000
  seed        = 7
}

agent "alice" {
  command = "./alice"
  args    = ["--quiet"]
  env     = { LEVEL = "3" }
}

agent "bob" {
  builtin = "raiser"
}
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	m := cfg.Match
	assert.Equal(t, "omaha-cash", m.Name)
	assert.Equal(t, 250, m.MaxHands)
	assert.Equal(t, int64(7), m.Seed)
	assert.Equal(t, DefaultStartingStack, m.StartingStack)
	assert.Equal(t, DefaultTimePerMoveMS, m.TimePerMoveMS)

	v := m.Variant()
	assert.Equal(t, game.Omaha, v.Game)
	assert.Equal(t, game.PotLimit, v.Limit)
	assert.False(t, v.Tournament)

	ac := m.AgentConfig()
	assert.Equal(t, 5*time.Second, ac.TimeBank)
	assert.Equal(t, 500*time.Millisecond, ac.TimePerMove)

	require.Len(t, cfg.Agents, 2)
	assert.Equal(t, []string{"--quiet"}, cfg.Agents[0].Args)
	assert.Equal(t, map[string]string{"LEVEL": "3"}, cfg.Agents[0].Env)
	assert.Equal(t, agent.Raiser, cfg.Agents[1].Builtin)
}

func TestLoadConfigSyntaxError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`match "x" { game_code = `), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		ok      bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "unknown game code", mutate: func(c *Config) { c.Match.GameCode = 10 }, wantErr: ErrInvalidGameCode},
		{name: "unknown builtin", mutate: func(c *Config) { c.Agents[0].Builtin = "shark" }, wantErr: agent.ErrUnknownBuiltin},
		{name: "one agent", mutate: func(c *Config) { c.Agents = c.Agents[:1] }},
		{name: "duplicate names", mutate: func(c *Config) { c.Agents[1].Name = c.Agents[0].Name }},
		{name: "two transports", mutate: func(c *Config) { c.Agents[0].Command = "./bot" }},
		{name: "no transport", mutate: func(c *Config) { c.Agents[0].Builtin = "" }},
		{name: "bank below move time", mutate: func(c *Config) { c.Match.TimeBankMS = 100 }},
		{name: "no stack", mutate: func(c *Config) { c.Match.StartingStack = 0 }},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			switch {
			case tc.ok:
				assert.NoError(t, err)
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}
