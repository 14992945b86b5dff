// Package cmd implements the CLI application to manage the family's portfolios.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/apisit/wealthos"
	"github.com/apisit/wealthos/yahoo"
	"github.com/google/subcommands"
)

// Commands lists the subcommands in help order.
// A main package registers them on a commander and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&usersCmd{},
	&planCmd{},
	&rebalanceCmd{},
	&reviewCmd{},
	&projectCmd{},
	&newsCmd{},
	&assistCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "wealthos.json", "Path to the configuration file holding member profiles")
var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the purchase ledger (JSONL format)")

// LoadConfig reads the app configuration file.
func LoadConfig() (*wealthos.Config, error) {
	return wealthos.LoadConfig(*configFile)
}

// Profile returns the named member's profile, with an error naming the valid
// members when unknown.
func Profile(cfg *wealthos.Config, name string) (*wealthos.Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("missing -u, pick one of: %s", strings.Join(cfg.Names(), ", "))
	}
	p := cfg.Profile(name)
	if p == nil {
		return nil, fmt.Errorf("unknown member %q, pick one of: %s", name, strings.Join(cfg.Names(), ", "))
	}
	return p, nil
}

// DecodeLedger reads the app ledger file. An absent file is an empty ledger,
// not an error: the first purchase creates it.
func DecodeLedger() (*wealthos.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger")
		return wealthos.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return wealthos.DecodeLedger(f)
}

// AppendRecords appends executed purchases to the app ledger file.
func AppendRecords(records ...wealthos.Record) subcommands.ExitStatus {
	if len(records) == 0 {
		fmt.Println("Nothing to record.")
		return subcommands.ExitSuccess
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	n, err := wealthos.EncodeRecords(f, records...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q after %d records: %v\n", *ledgerFile, n, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %d records to %s\n", n, *ledgerFile)
	return subcommands.ExitSuccess
}

// fetchQuotes fetches latest prices for the given tickers and the exchange
// rate from the profile's quote currency into the local currency. Both calls
// degrade rather than fail: missing prices stay missing and the rate falls
// back to the configured one.
func fetchQuotes(cfg *wealthos.Config, profile *wealthos.Profile, tickers []string) (*wealthos.PriceBook, wealthos.Rate) {
	src := yahoo.New()
	prices := wealthos.FetchPrices(src, profile.Currency, tickers)
	rate := wealthos.FetchRate(src, profile.Currency, cfg.LocalCurrency, cfg.FallbackRate)
	return prices, rate
}
