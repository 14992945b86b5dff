package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list the configured family members" }
func (*usersCmd) Usage() string {
	return `wos users

  List the family members from the configuration file, with each member's
  target portfolio.
`
}

func (*usersCmd) SetFlags(_ *flag.FlagSet) {}

func (c *usersCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	hundred := decimal.NewFromInt(100)
	for _, p := range cfg.Profiles {
		var targets []string
		for _, a := range p.Assets {
			targets = append(targets, fmt.Sprintf("%s %s%%", a.Ticker, a.Weight.Mul(hundred)))
		}
		if len(targets) == 0 {
			targets = []string{"no assets"}
		}
		fmt.Printf("%s (%s): %s\n", p.Name, p.Currency, strings.Join(targets, ", "))
	}
	return subcommands.ExitSuccess
}
