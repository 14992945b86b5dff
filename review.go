package wealthos

import (
	"sort"

	"github.com/apisit/wealthos/date"
)

// ReviewLine is the profit/loss view of one held ticker.
type ReviewLine struct {
	Ticker      string
	Quantity    Quantity // shares held per the ledger
	CostBasis   Money    // accumulated purchase cost, local currency
	Price       Money    // latest unit price, portfolio currency
	MarketValue Money    // Quantity × Price converted to local currency
	Gain        Money    // MarketValue - CostBasis
	Priced      bool     // false when no price was available
}

// GainRatio returns the unrealized gain as a fraction of the cost basis,
// e.g. 0.05 for +5%. Zero when there is no cost basis or no price.
func (l ReviewLine) GainRatio() float64 {
	if !l.Priced || !l.CostBasis.IsPositive() {
		return 0
	}
	return l.Gain.Amount().Div(l.CostBasis.Amount()).InexactFloat64()
}

// Review is the profit/loss report of one member's recorded portfolio:
// what the ledger says they paid versus what it is worth at current prices.
type Review struct {
	User          string
	Date          date.Date
	Currency      string // portfolio currency
	LocalCurrency string
	Rate          Rate
	Lines         []ReviewLine
	TotalCost     Money // over all held tickers
	TotalValue    Money // over priced tickers only
	TotalGain     Money // TotalValue - cost of priced tickers
}

// NewReview values a user's holdings against the given prices and rate.
//
// Profile tickers come first in declared order; tickers held in the ledger
// but no longer in the profile follow alphabetically, so past purchases
// never silently drop out of the report. Tickers with an unavailable price
// keep their cost basis and are flagged unpriced rather than dropped.
func NewReview(on date.Date, profile *Profile, ledger *Ledger, prices *PriceBook, rate Rate, localCurrency string) *Review {
	review := &Review{
		User:          profile.Name,
		Date:          on,
		Currency:      profile.Currency,
		LocalCurrency: localCurrency,
		Rate:          rate,
		TotalCost:     M(0, localCurrency),
		TotalValue:    M(0, localCurrency),
		TotalGain:     M(0, localCurrency),
	}

	holdings := ledger.Holdings(profile.Name)
	basis := ledger.CostBasis(profile.Name)

	tickers := profile.Tickers()
	var extras []string
	declared := make(map[string]bool)
	for _, t := range tickers {
		declared[t] = true
	}
	for t := range holdings {
		if !declared[t] {
			extras = append(extras, t)
		}
	}
	sort.Strings(extras)
	tickers = append(tickers, extras...)

	for _, ticker := range tickers {
		quantity := holdings.Get(ticker)
		if quantity.IsZero() {
			continue
		}
		line := ReviewLine{
			Ticker:    ticker,
			Quantity:  quantity,
			CostBasis: basis[ticker],
		}
		review.TotalCost = review.TotalCost.Add(line.CostBasis)

		if price, ok := prices.Price(ticker); ok {
			line.Priced = true
			line.Price = price
			line.MarketValue = price.Mul(quantity).Convert(rate.Value, localCurrency)
			line.Gain = line.MarketValue.Sub(line.CostBasis)
			review.TotalValue = review.TotalValue.Add(line.MarketValue)
			review.TotalGain = review.TotalGain.Add(line.Gain)
		}
		review.Lines = append(review.Lines, line)
	}
	return review
}
