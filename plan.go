package wealthos

import (
	"fmt"

	"github.com/apisit/wealthos/date"
	"github.com/shopspring/decimal"
)

// Plan sources, recorded on every ledger row a saved plan produces.
const (
	SourceFlat      = "flat"
	SourceRebalance = "rebalance"
	SourceManual    = "manual"
)

// minBuyFraction is the negligible-buy threshold of the rebalancer: a spend
// amount below this fraction of one share's price is not worth a purchase.
var minBuyFraction = decimal.NewFromFloat(0.1)

// Status qualifies a plan line against its target weight.
type Status int

const (
	StatusNone Status = iota
	StatusUnderweight
	StatusBalanced
	StatusOverweight
)

func (s Status) String() string {
	switch s {
	case StatusUnderweight:
		return "underweight"
	case StatusBalanced:
		return "balanced"
	case StatusOverweight:
		return "overweight"
	default:
		return ""
	}
}

// PlanLine is one row of a computed buy plan.
type PlanLine struct {
	Ticker    string
	Price     Money    // unit price, in the portfolio currency
	Quantity  Quantity // shares to buy; zero means no purchase
	Cost      Money    // Quantity × Price, in the portfolio currency
	CostLocal Money    // Cost converted to the local currency
	Status    Status   // set by the rebalancer, StatusNone on flat plans
}

// Plan is the result of one planning run. It is a pure value: recomputing
// with the same inputs yields the same plan.
type Plan struct {
	User          string
	Date          date.Date
	Source        string // SourceFlat or SourceRebalance
	Currency      string // portfolio (quote) currency
	LocalCurrency string
	Rate          Rate
	Budget        Money  // in local currency
	BudgetQuote   Money  // Budget converted to the portfolio currency
	Lines         []PlanLine
	TotalLocal    Money    // total planned spend, local currency
	Remaining     Money    // Budget - TotalLocal; can dip slightly negative from rounding
	Missing       []string // tickers skipped because no price was available
}

// Purchases returns the lines with a non-zero quantity, the ones actually
// worth executing and recording.
func (p *Plan) Purchases() []PlanLine {
	var lines []PlanLine
	for _, l := range p.Lines {
		if l.Quantity.IsPositive() {
			lines = append(lines, l)
		}
	}
	return lines
}

// Planner computes buy plans for one member's profile. It bundles the profile
// with the local currency budgets are entered in.
type Planner struct {
	profile       *Profile
	localCurrency string
}

// NewPlanner creates a planner for the given profile.
func NewPlanner(profile *Profile, localCurrency string) (*Planner, error) {
	if profile == nil {
		return nil, fmt.Errorf("no profile")
	}
	if localCurrency == "" {
		return nil, fmt.Errorf("no local currency")
	}
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &Planner{profile: profile, localCurrency: localCurrency}, nil
}

// Fractional reports whether the profile's market permits fractional shares.
// Portfolios quoted in a foreign currency trade fractionally, local ones in
// whole units.
func (p *Planner) Fractional() bool { return p.profile.Currency != p.localCurrency }

// quantize applies the market's share-quantization rule.
func (p *Planner) quantize(q Quantity) Quantity {
	if p.Fractional() {
		return q.RoundShares()
	}
	return q.WholeShares()
}

// check guards the inputs shared by both plan operations and returns the
// budget converted to the portfolio currency.
func (p *Planner) check(budget Money, prices *PriceBook, rate Rate) (Money, error) {
	if budget.IsNegative() {
		return Money{}, fmt.Errorf("budget must not be negative, got %s", budget)
	}
	if budget.Currency() != "" && budget.Currency() != p.localCurrency {
		return Money{}, fmt.Errorf("budget is in %s, want %s", budget.Currency(), p.localCurrency)
	}
	if !rate.Value.IsPositive() {
		return Money{}, fmt.Errorf("exchange rate must be positive, got %s", rate.Value)
	}
	if prices.Currency() != p.profile.Currency {
		return Money{}, fmt.Errorf("prices are in %s, want %s", prices.Currency(), p.profile.Currency)
	}
	return M(budget.Amount().Div(rate.Value), p.profile.Currency), nil
}

// newPlan prepares the common scaffolding of a plan.
func (p *Planner) newPlan(on date.Date, source string, budget, budgetQuote Money, rate Rate) *Plan {
	return &Plan{
		User:          p.profile.Name,
		Date:          on,
		Source:        source,
		Currency:      p.profile.Currency,
		LocalCurrency: p.localCurrency,
		Rate:          rate,
		Budget:        budget,
		BudgetQuote:   budgetQuote,
		TotalLocal:    M(0, p.localCurrency),
	}
}

// Flat computes a buy plan that splits the budget across the profile's
// assets in proportion to their target weights, ignoring current holdings.
//
// Tickers with no available price are skipped silently: they contribute
// nothing to the plan and nothing to the spent total. The remaining amount
// is whatever the quantized purchases leave of the budget.
func (p *Planner) Flat(on date.Date, budget Money, prices *PriceBook, rate Rate) (*Plan, error) {
	budgetQuote, err := p.check(budget, prices, rate)
	if err != nil {
		return nil, err
	}
	plan := p.newPlan(on, SourceFlat, budget, budgetQuote, rate)

	for _, asset := range p.profile.Assets {
		price, ok := prices.Price(asset.Ticker)
		if !ok {
			plan.Missing = append(plan.Missing, asset.Ticker)
			continue
		}
		target := M(budgetQuote.Amount().Mul(asset.Weight), p.profile.Currency)
		quantity := p.quantize(target.DivPrice(price))
		cost := price.Mul(quantity)
		costLocal := cost.Convert(rate.Value, p.localCurrency)

		plan.Lines = append(plan.Lines, PlanLine{
			Ticker:    asset.Ticker,
			Price:     price,
			Quantity:  quantity,
			Cost:      cost,
			CostLocal: costLocal,
		})
		plan.TotalLocal = plan.TotalLocal.Add(costLocal)
	}
	plan.Remaining = plan.Budget.Sub(plan.TotalLocal)
	return plan, nil
}

// Rebalance computes a buy-only rebalancing plan: the budget goes to assets
// below their target share of total wealth (current holdings plus the new
// budget). Overweight assets are never sold or trimmed.
//
// Shortfalls are funded in the profile's declared asset order: an earlier
// asset takes what it needs before a later one sees the rest, even if the
// later shortfall is larger. A spend amount below a tenth of one share's
// price is considered negligible and skipped.
func (p *Planner) Rebalance(on date.Date, budget Money, prices *PriceBook, rate Rate, holdings Holdings) (*Plan, error) {
	budgetQuote, err := p.check(budget, prices, rate)
	if err != nil {
		return nil, err
	}
	plan := p.newPlan(on, SourceRebalance, budget, budgetQuote, rate)

	// Total wealth after investing: everything already held at today's
	// prices, plus this month's budget. Unpriced tickers hold no weight.
	current := decimal.Zero
	for _, asset := range p.profile.Assets {
		if price, ok := prices.Price(asset.Ticker); ok {
			current = current.Add(price.Mul(holdings.Get(asset.Ticker)).Amount())
		}
	}
	wealth := current.Add(budgetQuote.Amount())

	remaining := budgetQuote.Amount()
	for _, asset := range p.profile.Assets {
		price, ok := prices.Price(asset.Ticker)
		if !ok {
			plan.Missing = append(plan.Missing, asset.Ticker)
			continue
		}
		line := PlanLine{
			Ticker:    asset.Ticker,
			Price:     price,
			Cost:      M(0, p.profile.Currency),
			CostLocal: M(0, p.localCurrency),
		}

		target := wealth.Mul(asset.Weight)
		held := price.Mul(holdings.Get(asset.Ticker)).Amount()
		shortfall := target.Sub(held)

		switch {
		case shortfall.IsZero():
			line.Status = StatusBalanced
		case shortfall.IsNegative():
			line.Status = StatusOverweight
		default:
			line.Status = StatusUnderweight
			spend := decimal.Min(shortfall, remaining)
			if spend.LessThan(price.Amount().Mul(minBuyFraction)) {
				// less than a tenth of a share, not worth a purchase
				break
			}
			quantity := p.quantize(M(spend, p.profile.Currency).DivPrice(price))
			if quantity.IsZero() {
				break
			}
			line.Quantity = quantity
			line.Cost = price.Mul(quantity)
			line.CostLocal = line.Cost.Convert(rate.Value, p.localCurrency)
			remaining = remaining.Sub(line.Cost.Amount())
			plan.TotalLocal = plan.TotalLocal.Add(line.CostLocal)
		}
		plan.Lines = append(plan.Lines, line)
	}
	plan.Remaining = plan.Budget.Sub(plan.TotalLocal)
	return plan, nil
}
