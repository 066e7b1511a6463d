package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/poker"
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Cards to classify, such as AhKhQhJhTh"`
	Low   string   `help:"Score as a low hand instead" enum:",razz,a5,27,8" default:""`
}

func (c *EvalCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "eval"})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", titleStyle.Render("cards"), titleStyle.Render("category"), titleStyle.Render("value"))
	for _, text := range c.Hands {
		cards, err := poker.ParseCards(text)
		if err != nil {
			logger.Error("Failed to parse cards", "cards", text, "err", err)
			return err
		}
		s, err := c.score(poker.NewHand(cards...))
		if err != nil {
			return err
		}
		category := s.Category().String()
		if s == poker.NoEightLow {
			category = "No Low"
		}
		fmt.Fprintf(w, "%s\t%s\t0x%08X\n", handStyle.Render(poker.FormatCards(cards)), category, uint32(s))
	}
	return w.Flush()
}

func (c *EvalCmd) score(h poker.Hand) (poker.Strength, error) {
	n := h.CountCards()
	switch c.Low {
	case "":
		if n < 5 || n > 7 {
			return 0, fmt.Errorf("need 5 to 7 cards, got %d", n)
		}
		return poker.Eval(h), nil
	case "razz":
		if n != 7 {
			return 0, fmt.Errorf("razz needs 7 cards, got %d", n)
		}
		return poker.EvalRazz(h), nil
	case "a5", "27":
		if n != 5 {
			return 0, fmt.Errorf("%s lowball needs 5 cards, got %d", c.Low, n)
		}
		if c.Low == "a5" {
			return poker.EvalAceToFive(h), nil
		}
		return poker.EvalDeuceToSeven(h), nil
	default:
		if n < 5 || n > 7 {
			return 0, fmt.Errorf("need 5 to 7 cards, got %d", n)
		}
		return poker.EvalEightLow(h), nil
	}
}
