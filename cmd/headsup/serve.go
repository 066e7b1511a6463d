package main

import (
	"fmt"

	"github.com/lox/headsup/internal/match"
)

type ServeCmd struct {
	Seats  []string   `help:"Names of the seats to host" default:"player1,player2"`
	Config string     `help:"Match file providing the settings" type:"path" default:"match.hcl"`
	Flags  MatchFlags `embed:""`
}

func (c *ServeCmd) Run() error {
	cfg, err := match.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load match file: %w", err)
	}
	cfg.Agents = cfg.Agents[:0]
	for _, name := range c.Seats {
		cfg.Agents = append(cfg.Agents, match.AgentConfig{Name: name, WebSocket: true})
	}
	return playAndReport(cfg, c.Flags)
}
