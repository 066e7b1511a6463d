package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/headsup/cmd/headsup/shared"
	"github.com/lox/headsup/internal/agent"
	"github.com/lox/headsup/internal/history"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/seatserver"
)

// MatchFlags are shared by the commands that play a match.
type MatchFlags struct {
	GameCode    int    `help:"Override the game code (11-20)" env:"HEADSUP_GAME_CODE"`
	Hands       int    `help:"Override the maximum number of hands" env:"HEADSUP_HANDS"`
	Seed        *int64 `help:"Override the random seed" env:"HEADSUP_SEED"`
	History     string `help:"Write the hand history to this file" type:"path" env:"HEADSUP_HISTORY"`
	DatabaseURL string `help:"Also store hand histories in PostgreSQL" env:"HEADSUP_DATABASE_URL"`
	Addr        string `help:"Listen address for websocket seats and status" default:"localhost:8080" env:"HEADSUP_ADDR"`
	Dumps       string `help:"Write each agent's dump to this directory" type:"path"`
	Debug       bool   `help:"Enable debug logging" env:"HEADSUP_DEBUG"`
	JSONLogs    bool   `name:"json-logs" help:"Log JSON instead of console output"`
}

func (f MatchFlags) apply(cfg *match.Config) {
	if f.GameCode != 0 {
		cfg.Match.GameCode = f.GameCode
	}
	if f.Hands != 0 {
		cfg.Match.MaxHands = f.Hands
	}
	if f.Seed != nil {
		cfg.Match.Seed = *f.Seed
	}
}

type RunCmd struct {
	Config string     `arg:"" optional:"" default:"match.hcl" help:"Match file" type:"path"`
	Flags  MatchFlags `embed:""`
}

func (c *RunCmd) Run() error {
	cfg, err := match.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load match file: %w", err)
	}
	return playAndReport(cfg, c.Flags)
}

func playAndReport(cfg *match.Config, flags MatchFlags) error {
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid match configuration: %w", err)
	}

	logger := shared.NewLogger(flags.Debug, flags.JSONLogs)
	ctx, cancel := shared.SignalContext(context.Background(), logger)
	defer cancel()

	res, err := playMatch(ctx, logger, cfg, flags)
	if res != nil {
		printSummary(res)
		if flags.Dumps != "" {
			if derr := writeDumps(flags.Dumps, res); derr != nil {
				logger.Error().Err(derr).Msg("Failed to write agent dumps")
			}
		}
	}
	return err
}

// playMatch connects the agents, serving websocket seats if any agent
// needs one, and plays the match to the end.
func playMatch(ctx context.Context, logger zerolog.Logger, cfg *match.Config, flags MatchFlags) (*match.Result, error) {
	id := uuid.NewString()
	logger = logger.With().Str("match_id", id).Logger()

	sink, err := openSink(ctx, flags, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close history sink")
		}
	}()

	agentCfg := cfg.Match.AgentConfig()
	agentCfg.Logger = logger

	var remote []string
	for _, a := range cfg.Agents {
		if a.WebSocket {
			remote = append(remote, a.Name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	var seats *seatserver.Server
	var httpServer *http.Server
	if len(remote) > 0 {
		seats = seatserver.New(remote, agentCfg, logger)
		seats.SetStatus(func() any {
			return map[string]any{"id": id, "game": cfg.Match.Variant().String()}
		})
		httpServer = &http.Server{
			Addr:              flags.Addr,
			Handler:           seats.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info().Str("addr", flags.Addr).Strs("seats", remote).Msg("Waiting for agents")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("seat server: %w", err)
			}
			return nil
		})
	}

	var res *match.Result
	g.Go(func() error {
		if httpServer != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()
		}

		channels, err := connectAgents(gctx, ctx, cfg, agentCfg, seats)
		defer func() {
			for _, ch := range channels {
				if ch != nil {
					_ = ch.Close()
				}
			}
		}()
		if err != nil {
			return err
		}

		matchSeats := make([]match.Seat, len(cfg.Agents))
		for i, a := range cfg.Agents {
			matchSeats[i] = match.Seat{Name: a.Name, Channel: channels[i]}
		}
		runner, err := match.New(cfg.Match, matchSeats,
			match.WithID(id),
			match.WithSink(sink),
			match.WithLogger(logger))
		if err != nil {
			return err
		}
		res, err = runner.Run(gctx)
		return err
	})

	err = g.Wait()
	return res, err
}

// connectAgents starts every configured agent at once. Processes and
// built-in bots live for the whole match, so they are bound to matchCtx
// rather than to the errgroup's context.
func connectAgents(gctx, matchCtx context.Context, cfg *match.Config, agentCfg agent.Config, seats *seatserver.Server) ([]agent.Channel, error) {
	channels := make([]agent.Channel, len(cfg.Agents))
	g, gctx := errgroup.WithContext(gctx)
	for i, a := range cfg.Agents {
		g.Go(func() error {
			switch {
			case a.Command != "":
				p, err := agent.StartProcess(matchCtx, a.Command, a.Args, a.Env, agentCfg)
				if err != nil {
					return fmt.Errorf("agent %s: %w", a.Name, err)
				}
				channels[i] = p
			case a.Builtin != "":
				b, err := agent.NewBuiltin(matchCtx, a.Builtin, randutil.Stream(cfg.Match.Seed, uint64(i)+1), agentCfg)
				if err != nil {
					return fmt.Errorf("agent %s: %w", a.Name, err)
				}
				channels[i] = b
			default:
				w, err := seats.Wait(gctx, a.Name)
				if err != nil {
					return err
				}
				channels[i] = w
			}
			return nil
		})
	}
	return channels, g.Wait()
}

func openSink(ctx context.Context, flags MatchFlags, id string) (history.Sink, error) {
	var sinks []history.Sink
	if flags.History != "" {
		f, err := history.NewFileSink(flags.History)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, f)
	}
	if flags.DatabaseURL != "" {
		pg, err := history.OpenPostgres(ctx, flags.DatabaseURL)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, pg)
	}
	switch len(sinks) {
	case 0:
		return history.Discard, nil
	case 1:
		return sinks[0], nil
	}
	return history.Multi(sinks...), nil
}

func writeDumps(dir string, res *match.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range res.Seats {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.txt", res.ID[:8], s.Name))
		if err := os.WriteFile(path, []byte(s.Dump), 0o644); err != nil {
			return err
		}
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printSummary(res *match.Result) {
	fmt.Printf("%s\n", titleStyle.Render(res.Game))
	fmt.Printf("%s\n\n", dimStyle.Render(fmt.Sprintf("%d hands in %v", res.Hands, res.Duration().Truncate(time.Millisecond))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		titleStyle.Render("agent"),
		titleStyle.Render("finish"),
		titleStyle.Render("stack"),
		titleStyle.Render("gain/loss"),
		titleStyle.Render("timeouts"))
	for _, s := range res.Seats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%+d\t%d\n", nameStyle.Render(s.Name), s.Finish, s.Stack, s.GainLoss, s.Timeouts)
	}
	w.Flush()

	if res.Winner != "" {
		fmt.Printf("\n%s %s\n", titleStyle.Render("winner"), winnerStyle.Render(res.Winner))
	}
}
