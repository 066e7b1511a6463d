package match

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/headsup/internal/agent"
	"github.com/lox/headsup/internal/game"
)

var (
	// ErrInvalidGameCode is returned for a game code outside 11-20.
	ErrInvalidGameCode = errors.New("match: invalid game code")
	// ErrMatchFinished is returned when a hand is requested after the match
	// has ended.
	ErrMatchFinished = errors.New("match: finished")
)

// Config is the contents of a match file.
type Config struct {
	Match  Settings      `hcl:"match,block"`
	Agents []AgentConfig `hcl:"agent,block"`
}

// Settings holds the rules of a match.
type Settings struct {
	Name          string `hcl:"name,label"`
	GameCode      int    `hcl:"game_code,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	HandsPerLevel int    `hcl:"hands_per_level,optional"`
	MaxHands      int    `hcl:"max_hands,optional"`
	TimePerMoveMS int    `hcl:"time_per_move_ms,optional"`
	TimeBankMS    int    `hcl:"timebank_ms,optional"`
	MaxTimeouts   int    `hcl:"max_timeouts,optional"`
	EquityTrials  int    `hcl:"equity_trials,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// AgentConfig describes one seat. Exactly one of Command, Builtin and
// WebSocket picks how the agent is reached.
type AgentConfig struct {
	Name      string            `hcl:"name,label"`
	Command   string            `hcl:"command,optional"`
	Args      []string          `hcl:"args,optional"`
	Env       map[string]string `hcl:"env,optional"`
	Builtin   string            `hcl:"builtin,optional"`
	WebSocket bool              `hcl:"websocket,optional"`
}

// Standard settings.
const (
	DefaultGameCode      = 13
	DefaultStartingStack = 2000
	DefaultHandsPerLevel = 10
	DefaultMaxHands      = 1000
	DefaultTimePerMoveMS = 500
	DefaultTimeBankMS    = 10000
	DefaultMaxTimeouts   = 2
	DefaultEquityTrials  = 1000
)

// DefaultSettings returns a heads-up no-limit hold'em tournament.
func DefaultSettings() Settings {
	return Settings{
		Name:          "headsup",
		GameCode:      DefaultGameCode,
		StartingStack: DefaultStartingStack,
		HandsPerLevel: DefaultHandsPerLevel,
		MaxHands:      DefaultMaxHands,
		TimePerMoveMS: DefaultTimePerMoveMS,
		TimeBankMS:    DefaultTimeBankMS,
		MaxTimeouts:   DefaultMaxTimeouts,
		EquityTrials:  DefaultEquityTrials,
	}
}

// DefaultConfig returns the default settings with two built-in bots.
func DefaultConfig() *Config {
	return &Config{
		Match: DefaultSettings(),
		Agents: []AgentConfig{
			{Name: "player1", Builtin: agent.CallingStation},
			{Name: "player2", Builtin: agent.Random},
		},
	}
}

// LoadConfig reads a match file. A missing file yields DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.Match.applyDefaults()
	return &config, nil
}

func (s *Settings) applyDefaults() {
	d := DefaultSettings()
	if s.GameCode == 0 {
		s.GameCode = d.GameCode
	}
	if s.StartingStack == 0 {
		s.StartingStack = d.StartingStack
	}
	if s.HandsPerLevel == 0 {
		s.HandsPerLevel = d.HandsPerLevel
	}
	if s.MaxHands == 0 {
		s.MaxHands = d.MaxHands
	}
	if s.TimePerMoveMS == 0 {
		s.TimePerMoveMS = d.TimePerMoveMS
	}
	if s.TimeBankMS == 0 {
		s.TimeBankMS = d.TimeBankMS
	}
	if s.MaxTimeouts == 0 {
		s.MaxTimeouts = d.MaxTimeouts
	}
	if s.EquityTrials == 0 {
		s.EquityTrials = d.EquityTrials
	}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if _, ok := game.VariantForCode(s.GameCode); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidGameCode, s.GameCode)
	}
	if s.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive")
	}
	if s.MaxHands < 0 || s.HandsPerLevel < 0 || s.MaxTimeouts < 0 {
		return fmt.Errorf("max hands, hands per level and max timeouts must not be negative")
	}
	if s.TimePerMoveMS <= 0 || s.TimeBankMS < s.TimePerMoveMS {
		return fmt.Errorf("time per move must be positive and no larger than the time bank")
	}
	if s.EquityTrials <= 0 {
		return fmt.Errorf("equity trials must be positive")
	}
	return nil
}

// Validate checks the settings and the agents.
func (c *Config) Validate() error {
	if err := c.Match.Validate(); err != nil {
		return err
	}
	if len(c.Agents) < 2 {
		return fmt.Errorf("at least two agents must be configured")
	}
	seen := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.Name == "" || seen[a.Name] {
			return fmt.Errorf("agent names must be unique and non-empty: %q", a.Name)
		}
		seen[a.Name] = true

		kinds := 0
		for _, set := range []bool{a.Command != "", a.Builtin != "", a.WebSocket} {
			if set {
				kinds++
			}
		}
		if kinds != 1 {
			return fmt.Errorf("agent %s: exactly one of command, builtin or websocket must be set", a.Name)
		}
		if a.Builtin != "" && !slices.Contains(agent.Builtins, a.Builtin) {
			return fmt.Errorf("agent %s: %w: %q", a.Name, agent.ErrUnknownBuiltin, a.Builtin)
		}
	}
	return nil
}

// Variant returns the game the settings describe.
func (s Settings) Variant() game.Variant {
	v, _ := game.VariantForCode(s.GameCode)
	return v
}

// AgentConfig returns the timing rules the settings give every agent.
func (s Settings) AgentConfig() agent.Config {
	cfg := agent.DefaultConfig()
	cfg.TimePerMove = time.Duration(s.TimePerMoveMS) * time.Millisecond
	cfg.TimeBank = time.Duration(s.TimeBankMS) * time.Millisecond
	cfg.MaxTimeouts = s.MaxTimeouts
	return cfg
}
