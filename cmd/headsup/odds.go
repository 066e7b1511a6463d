package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/equity"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

type OddsCmd struct {
	Hands  []string `arg:"" help:"Hole cards per player, such as AcKd QhJs"`
	Board  string   `short:"b" help:"Community cards, such as Td7s8h"`
	Omaha  bool     `help:"Score hands as pot-limit omaha (four hole cards)"`
	Trials int      `short:"i" help:"Number of random boards" default:"100000"`
	Seed   *int64   `help:"Random seed for reproducible results"`
}

var (
	handStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (c *OddsCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "odds"})

	holeCards := 2
	if c.Omaha {
		holeCards = 4
	}

	var used poker.Hand
	seen := func(cards []poker.Card) error {
		for _, card := range cards {
			if used.HasCard(card) {
				return fmt.Errorf("duplicate card %s", card)
			}
			used.AddCard(card)
		}
		return nil
	}

	hands := make([][]poker.Card, len(c.Hands))
	for i, text := range c.Hands {
		cards, err := poker.ParseCards(text)
		if err != nil {
			logger.Error("Failed to parse hand", "hand", i+1, "err", err)
			return err
		}
		if len(cards) != holeCards {
			return fmt.Errorf("hand %d: need %d cards, got %d", i+1, holeCards, len(cards))
		}
		if err := seen(cards); err != nil {
			return err
		}
		hands[i] = cards
	}
	if len(hands) < 2 {
		return fmt.Errorf("need at least two hands")
	}

	var board []poker.Card
	if c.Board != "" {
		var err error
		if board, err = poker.ParseCards(c.Board); err != nil {
			logger.Error("Failed to parse board", "err", err)
			return err
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards")
		}
		if err := seen(board); err != nil {
			return err
		}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	opts := []equity.Option{equity.WithTrials(c.Trials)}
	if c.Omaha {
		opts = append(opts, equity.WithEvaluator(poker.EvalOmaha))
	}
	est := equity.New(opts...)

	live := make([]bool, len(hands))
	for i := range live {
		live[i] = true
	}
	deck := poker.NewDeckWithout(randutil.New(seed), used)

	start := time.Now()
	wins := est.Tally(deck, board, hands, live)
	permille := equity.Permille(wins, live)
	logger.Debug("Estimated equity", "trials", c.Trials, "duration", time.Since(start))

	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", titleStyle.Render("board"), poker.FormatCards(board))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", titleStyle.Render("hand"), titleStyle.Render("wins"), titleStyle.Render("equity"))
	for i, hand := range hands {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			handStyle.Render(strings.Trim(poker.FormatCards(hand), "[]")),
			wins[i],
			percentStyle.Render(equity.FormatPercent(permille[i])+"%"))
	}
	w.Flush()
	fmt.Printf("\n%s\n", dimStyle.Render(fmt.Sprintf("%d boards in %v", c.Trials, time.Since(start).Truncate(time.Millisecond))))
	return nil
}
