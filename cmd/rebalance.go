package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apisit/wealthos"
	"github.com/apisit/wealthos/renderer"
	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	user   string
	budget float64
	day    string
	save   bool
	text   bool
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "fund a member's most underweight positions, buy-only"
}
func (*rebalanceCmd) Usage() string {
	return `wos rebalance -u <member> -b <budget> [-d <date>] [-text] [-save]

  Compute a buy-only rebalance plan for a member: recorded holdings are
  compared against the target weights, and the budget funds the shortfalls
  in the order the assets are declared. Overweight positions are never sold,
  they simply receive nothing.

Usage Examples:
# Top up whatever drifted below target with 20000 THB.
$ wos rebalance -u Min -b 20000
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Member to rebalance.")
	f.Float64Var(&c.budget, "b", 0, "Budget, in the local currency.")
	f.StringVar(&c.day, "d", "", "Date of the plan. Defaults to today.")
	f.BoolVar(&c.text, "text", false, "Print a plain-text summary instead of markdown, for sharing in chats.")
	f.BoolVar(&c.save, "save", false, "Append the planned purchases to the ledger.")
}

func (c *rebalanceCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

func (c *rebalanceCmd) generate() (*wealthos.Plan, error) {
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
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}

	prices, rate := fetchQuotes(cfg, profile, profile.Tickers())
	budget := wealthos.M(c.budget, cfg.LocalCurrency)
	return planner.Rebalance(on, budget, prices, rate, ledger.Holdings(profile.Name))
}
