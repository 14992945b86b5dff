package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/apisit/wealthos"
	"github.com/apisit/wealthos/renderer"
	"github.com/google/subcommands"
)

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	user string
	day  string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "value a member's recorded holdings at latest prices" }
func (*reviewCmd) Usage() string {
	return `wos review -u <member> [-d <date>]

  Value the member's recorded purchases at latest prices and report the
  unrealized gain per position. Positions bought under a ticker no longer
  in the profile are still reported.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Member to review.")
	f.StringVar(&c.day, "d", "", "Date of the report. Defaults to today.")
}

func (c *reviewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	review, err := c.generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ReviewMarkdown(review))
	return subcommands.ExitSuccess
}

func (c *reviewCmd) generate() (*wealthos.Review, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	profile, err := Profile(cfg, c.user)
	if err != nil {
		return nil, err
	}
	on, err := planDate(c.day)
	if err != nil {
		return nil, err
	}
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}

	// Price everything held, not just what the profile declares today.
	tickers := profile.Tickers()
	for ticker := range ledger.Holdings(profile.Name) {
		if !slices.Contains(tickers, ticker) {
			tickers = append(tickers, ticker)
		}
	}

	prices, rate := fetchQuotes(cfg, profile, tickers)
	return wealthos.NewReview(on, profile, ledger, prices, rate, cfg.LocalCurrency), nil
}
