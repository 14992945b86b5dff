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

type projectCmd struct {
	user   string
	budget float64
	years  int
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the snowball of steady monthly investing" }
func (*projectCmd) Usage() string {
	return `wos project -u <member> -b <budget> [-years <n>]

  Show the year-by-year projected value of investing the same monthly
  budget over the horizon, compounded at the expected annual return of
  the member's market.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Member to project for.")
	f.Float64Var(&c.budget, "b", 0, "Monthly budget, in the local currency.")
	f.IntVar(&c.years, "years", 10, "Projection horizon in years.")
}

func (c *projectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	profile, err := Profile(cfg, c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	planner, err := wealthos.NewPlanner(profile, cfg.LocalCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.budget <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -b must be a positive monthly budget")
		return subcommands.ExitUsageError
	}

	projection := planner.Project(wealthos.M(c.budget, cfg.LocalCurrency), c.years)
	printMarkdown(renderer.ProjectionMarkdown(projection))
	return subcommands.ExitSuccess
}
