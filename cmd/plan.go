package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apisit/wealthos"
	"github.com/apisit/wealthos/date"
	"github.com/apisit/wealthos/renderer"
	"github.com/google/subcommands"
)

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	user   string
	budget float64
	day    string
	save   bool
	text   bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "split a monthly budget across a member's target weights" }
func (*planCmd) Usage() string {
	return `wos plan -u <member> -b <budget> [-d <date>] [-text] [-save]

  Compute this month's buy plan for a member: the budget, entered in the
  local currency, is split across the member's target weights at latest
  prices. Use -save to record the purchases in the ledger once executed.

Usage Examples:
# Plan Min's usual 30000 THB.
$ wos plan -u Min -b 30000
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Member to plan for.")
	f.Float64Var(&c.budget, "b", 0, "Monthly budget, in the local currency.")
	f.StringVar(&c.day, "d", "", "Date of the plan. Defaults to today.")
	f.BoolVar(&c.text, "text", false, "Print a plain-text summary instead of markdown, for sharing in chats.")
	f.BoolVar(&c.save, "save", false, "Append the planned purchases to the ledger.")
}

func (c *planCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.text {
		fmt.Println(renderer.PlanText(plan))
	} else {
		printMarkdown(renderer.PlanMarkdown(plan))
	}

	if c.save {
		return AppendRecords(wealthos.RecordsFromPlan(plan)...)
	}
	return subcommands.ExitSuccess
}

func (c *planCmd) generate() (*wealthos.Plan, error) {
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
	planner, err := wealthos.NewPlanner(profile, cfg.LocalCurrency)
	if err != nil {
		return nil, err
	}

	prices, rate := fetchQuotes(cfg, profile, profile.Tickers())
	budget := wealthos.M(c.budget, cfg.LocalCurrency)
	return planner.Flat(on, budget, prices, rate)
}

// planDate parses the -d flag, defaulting to today.
func planDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
