package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apisit/wealthos"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `wos fmt

  Validate and format the ledger file. All records are read, sorted by
  date then member then ticker, and written back in a canonical JSONL
  form with a stable field order. Hand-edited files come out clean.
`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no records to format.")
		return subcommands.ExitSuccess
	}

	formatted := ledger.Fmt()
	f, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := wealthos.EncodeLedger(f, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d records in %s.\n", formatted.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
