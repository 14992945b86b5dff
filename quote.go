package wealthos

import (
	"log"

	"github.com/shopspring/decimal"
)

// PriceSource provides the latest traded price for a ticker, in the ticker's
// native currency. Implementations must return an error for unknown or
// delisted tickers rather than a zero price.
type PriceSource interface {
	LatestPrice(ticker string) (float64, error)
}

// RateSource provides the latest exchange rate for a currency pair, in 'to'
// units per one 'from' unit.
type RateSource interface {
	LatestRate(from, to string) (float64, error)
}

// PriceBook holds the prices fetched for one planning run. A ticker is either
// present with a positive price or unavailable; there is no error state.
type PriceBook struct {
	currency string
	prices   map[string]decimal.Decimal
}

// NewPriceBook returns an empty price book for prices in the given currency.
func NewPriceBook(currency string) *PriceBook {
	return &PriceBook{currency: currency, prices: make(map[string]decimal.Decimal)}
}

// Currency returns the currency all prices in the book are quoted in.
func (b *PriceBook) Currency() string { return b.currency }

// Set records a price for a ticker. Non-positive prices are ignored, keeping
// the ticker unavailable.
func (b *PriceBook) Set(ticker string, price decimal.Decimal) {
	if !price.IsPositive() {
		return
	}
	b.prices[ticker] = price
}

// Price returns the ticker's price and whether it is available.
func (b *PriceBook) Price(ticker string) (Money, bool) {
	p, ok := b.prices[ticker]
	if !ok {
		return Money{}, false
	}
	return M(p, b.currency), true
}

// Missing returns the subset of tickers with no available price, in order.
func (b *PriceBook) Missing(tickers []string) []string {
	var missing []string
	for _, t := range tickers {
		if _, ok := b.prices[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// FetchPrices builds a price book in the given currency by querying the
// source for each ticker in turn. A failed lookup leaves that ticker
// unavailable and does not affect the others.
func FetchPrices(src PriceSource, currency string, tickers []string) *PriceBook {
	book := NewPriceBook(currency)
	for _, t := range tickers {
		price, err := src.LatestPrice(t)
		if err != nil {
			log.Printf("warning: no price for %s: %v", t, err)
			continue
		}
		book.Set(t, decimal.NewFromFloat(price))
	}
	return book
}

// Rate is an exchange rate in local-currency units per one unit of quote
// currency, and whether it came from the configured fallback instead of a
// live lookup.
type Rate struct {
	Value    decimal.Decimal
	Fallback bool
}

// UnitRate is the rate between a currency and itself.
func UnitRate() Rate { return Rate{Value: decimal.NewFromInt(1)} }

// FetchRate queries the source for the from→to exchange rate, substituting
// the fallback rate when the lookup fails. When both currencies are equal the
// rate is 1 and the source is not queried.
func FetchRate(src RateSource, from, to string, fallback decimal.Decimal) Rate {
	if from == to {
		return UnitRate()
	}
	rate, err := src.LatestRate(from, to)
	if err != nil || rate <= 0 {
		log.Printf("warning: no live rate for %s/%s, using fallback %s", from, to, fallback)
		return Rate{Value: fallback, Fallback: true}
	}
	return Rate{Value: decimal.NewFromFloat(rate).Round(2)}
}
