package wealthos

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// Defaults applied when the configuration file leaves them out.
const (
	// DefaultLocalCurrency is the currency budgets are entered in.
	DefaultLocalCurrency = "THB"
	// DefaultNewsFeed is the RSS feed used by the news subcommand.
	DefaultNewsFeed = "https://finance.yahoo.com/news/rssindex"
)

// DefaultFallbackRate is substituted when the live FX lookup is unavailable,
// in local-currency units per one unit of quote currency.
var DefaultFallbackRate = decimal.NewFromFloat(34.50)

// Asset is one line of a target portfolio: a ticker and the fraction of the
// portfolio value it should represent. Order matters: it is the funding
// priority during rebalancing.
type Asset struct {
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"weight"`
}

// Profile is the static target portfolio of one family member.
// It is loaded once at startup and never mutated.
type Profile struct {
	Name     string  `json:"name"`
	Currency string  `json:"currency"` // currency the assets are quoted in
	Assets   []Asset `json:"assets"`   // in declared order
}

// Tickers returns the profile's tickers in declared order.
func (p *Profile) Tickers() []string {
	tickers := make([]string, 0, len(p.Assets))
	for _, a := range p.Assets {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}

// validate checks the profile for obvious configuration mistakes.
func (p *Profile) validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.Currency == "" {
		return fmt.Errorf("profile %q has no currency", p.Name)
	}
	// An empty asset list is accepted: it plans nothing and keeps the
	// whole budget as remaining funds.
	sum := decimal.Zero
	seen := make(map[string]bool)
	for _, a := range p.Assets {
		if a.Ticker == "" {
			return fmt.Errorf("profile %q has an asset without a ticker", p.Name)
		}
		if seen[a.Ticker] {
			return fmt.Errorf("profile %q declares %q twice", p.Name, a.Ticker)
		}
		seen[a.Ticker] = true
		if !a.Weight.IsPositive() {
			return fmt.Errorf("profile %q: weight of %q must be positive", p.Name, a.Ticker)
		}
		sum = sum.Add(a.Weight)
	}
	// Sums below 1 are deliberate (keeping part of the budget in cash),
	// above 1 is always a mistake.
	if sum.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("profile %q: weights sum to %s, more than 1", p.Name, sum)
	}
	return nil
}

// Config is the process-wide static configuration: who the members are,
// what currency budgets are entered in, and the FX fallback.
type Config struct {
	LocalCurrency string          `json:"localCurrency"`
	FallbackRate  decimal.Decimal `json:"fallbackRate"`
	NewsFeed      string          `json:"newsFeed"`
	Profiles      []Profile       `json:"profiles"`
}

// Profile returns the profile with the given member name, or nil if unknown.
func (c *Config) Profile(name string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}

// Names returns all member names in declared order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		names = append(names, p.Name)
	}
	return names
}

// DecodeConfig reads a configuration from JSON, applies defaults, and
// validates all profiles.
func DecodeConfig(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if c.LocalCurrency == "" {
		c.LocalCurrency = DefaultLocalCurrency
	}
	if !c.FallbackRate.IsPositive() {
		c.FallbackRate = DefaultFallbackRate
	}
	if c.NewsFeed == "" {
		c.NewsFeed = DefaultNewsFeed
	}
	for i := range c.Profiles {
		if err := c.Profiles[i].validate(); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// LoadConfig reads and decodes the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeConfig(f)
}
