package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/scoring"
)

// ScoreCmd prints the score of one player's round.
type ScoreCmd struct {
	Round   int  `short:"r" required:"" help:"Round number (1-10)"`
	Bid     int  `short:"b" required:"" help:"Tricks bid"`
	Tricks  int  `short:"t" required:"" help:"Tricks won"`
	Bonus   int  `help:"Bonus points claimed"`
	Penalty int  `help:"Penalty points"`
	Verbose bool `help:"Show how the score was built"`
}

func (c *ScoreCmd) Validate() error {
	if c.Round < 1 || c.Round > models.FinalRound {
		return fmt.Errorf("round must be between 1 and %d, got %d", models.FinalRound, c.Round)
	}
	if c.Bid < 0 || c.Tricks < 0 {
		return errors.New("bid and tricks must not be negative")
	}
	return nil
}

func (c *ScoreCmd) Run(out io.Writer) error {
	total := scoring.Score(c.Bid, c.Tricks, c.Round, c.Bonus, c.Penalty)
	if !c.Verbose {
		_, err := fmt.Fprintln(out, total)
		return err
	}

	base := scoring.Base(c.Bid, c.Tricks, c.Round)
	bonus := 0
	if c.Bid > 0 && scoring.BidMade(c.Bid, c.Tricks) {
		bonus = c.Bonus
	}
	_, err := fmt.Fprintf(out, "base %d, bonus %d, penalty %d, total %d\n", base, bonus, c.Penalty, total)
	return err
}
