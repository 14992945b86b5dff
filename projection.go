package wealthos

import "github.com/shopspring/decimal"

// Expected annual returns used by the compounding projection. Foreign-market
// portfolios assume equity-like growth, local ones a more conservative rate.
var (
	foreignAnnualReturn = decimal.NewFromFloat(0.10)
	localAnnualReturn   = decimal.NewFromFloat(0.08)
)

// ProjectionPoint is the projected portfolio value after a number of years
// of steady monthly contributions.
type ProjectionPoint struct {
	Year  int
	Value Money // local currency
}

// Projection is the compounding "snowball" outlook for a profile.
type Projection struct {
	MonthlyBudget Money
	AnnualReturn  decimal.Decimal
	Points        []ProjectionPoint
}

// Project computes the year-by-year snowball series for a steady monthly
// budget over the given horizon:
//
//	value(y) = budget × 12 × y × (1+r)^y
//
// the contributions so far, compounded at the expected annual return.
func (p *Planner) Project(monthlyBudget Money, years int) *Projection {
	annual := localAnnualReturn
	if p.Fractional() {
		annual = foreignAnnualReturn
	}
	projection := &Projection{
		MonthlyBudget: monthlyBudget,
		AnnualReturn:  annual,
	}
	growth := decimal.NewFromInt(1).Add(annual)
	yearly := monthlyBudget.Amount().Mul(decimal.NewFromInt(12))
	for y := 1; y <= years; y++ {
		value := yearly.Mul(decimal.NewFromInt(int64(y))).Mul(growth.Pow(decimal.NewFromInt(int64(y))))
		projection.Points = append(projection.Points, ProjectionPoint{
			Year:  y,
			Value: M(value, monthlyBudget.Currency()),
		})
	}
	return projection
}
