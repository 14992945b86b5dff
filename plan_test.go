package wealthos

import (
	"reflect"
	"testing"
	"time"

	"github.com/apisit/wealthos/date"
	"github.com/shopspring/decimal"
)

func thb(v float64) Money { return M(v, "THB") }
func usd(v float64) Money { return M(v, "USD") }

var on = date.New(2025, time.September, 1)

// profileOf builds a profile from ticker/weight pairs in order.
func profileOf(name, currency string, pairs ...any) *Profile {
	p := &Profile{Name: name, Currency: currency}
	for i := 0; i < len(pairs); i += 2 {
		p.Assets = append(p.Assets, Asset{
			Ticker: pairs[i].(string),
			Weight: decimal.NewFromFloat(pairs[i+1].(float64)),
		})
	}
	return p
}

func bookOf(currency string, pairs ...any) *PriceBook {
	b := NewPriceBook(currency)
	for i := 0; i < len(pairs); i += 2 {
		b.Set(pairs[i].(string), decimal.NewFromFloat(pairs[i+1].(float64)))
	}
	return b
}

func mustPlanner(t *testing.T, p *Profile, local string) *Planner {
	t.Helper()
	planner, err := NewPlanner(p, local)
	if err != nil {
		t.Fatalf("NewPlanner() error = %v", err)
	}
	return planner
}

func TestFlat_scenario(t *testing.T) {
	// Local-currency portfolio: whole-unit market, rate 1.
	planner := mustPlanner(t, profileOf("Min", "THB", "AAA", 0.6, "BBB", 0.4), "THB")
	prices := bookOf("THB", "AAA", 100.0, "BBB", 50.0)

	plan, err := planner.Flat(on, thb(1000), prices, UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}

	if len(plan.Lines) != 2 {
		t.Fatalf("Flat() produced %d lines, want 2", len(plan.Lines))
	}
	wantLines := []struct {
		ticker string
		qty    Quantity
		cost   Money
	}{
		{"AAA", Q(6), thb(600)},
		{"BBB", Q(8), thb(400)},
	}
	for i, want := range wantLines {
		got := plan.Lines[i]
		if got.Ticker != want.ticker {
			t.Errorf("line %d ticker = %s, want %s", i, got.Ticker, want.ticker)
		}
		if !got.Quantity.Equal(want.qty) {
			t.Errorf("line %d quantity = %s, want %s", i, got.Quantity, want.qty)
		}
		if !got.CostLocal.Equal(want.cost) {
			t.Errorf("line %d cost = %s, want %s", i, got.CostLocal, want.cost)
		}
	}
	if !plan.Remaining.IsZero() {
		t.Errorf("remaining = %s, want 0", plan.Remaining)
	}
}

func TestFlat_quantization(t *testing.T) {
	// targetAmount 100.456789 at price 10: fractional market rounds the
	// quantity to 4 decimals, whole-unit market truncates toward zero.
	prices := bookOf("USD", "AAA", 10.0)

	fractional := mustPlanner(t, profileOf("Min", "USD", "AAA", 1.0), "THB")
	plan, err := fractional.Flat(on, thb(100.456789), prices, UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if got, want := plan.Lines[0].Quantity, Q(10.0457); !got.Equal(want) {
		t.Errorf("fractional quantity = %s, want %s", got, want)
	}

	whole := mustPlanner(t, profileOf("Min", "THB", "AAA", 1.0), "THB")
	plan, err = whole.Flat(on, thb(100.456789), bookOf("THB", "AAA", 10.0), UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if got, want := plan.Lines[0].Quantity, Q(10); !got.Equal(want) {
		t.Errorf("whole-unit quantity = %s, want %s", got, want)
	}
}

func TestFlat_fxConversion(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.5), "THB")
	prices := bookOf("USD", "AAA", 100.0)
	rate := Rate{Value: decimal.NewFromInt(35)}

	plan, err := planner.Flat(on, thb(70000), prices, rate)
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	// 70000 THB = $2000; 50% = $1000 → 10 shares at $100.
	if got, want := plan.BudgetQuote, usd(2000); !got.Equal(want) {
		t.Errorf("budgetQuote = %s, want %s", got, want)
	}
	line := plan.Lines[0]
	if !line.Quantity.Equal(Q(10)) {
		t.Errorf("quantity = %s, want 10", line.Quantity)
	}
	if !line.Cost.Equal(usd(1000)) {
		t.Errorf("cost = %s, want %s", line.Cost, usd(1000))
	}
	if !line.CostLocal.Equal(thb(35000)) {
		t.Errorf("costLocal = %s, want %s", line.CostLocal, thb(35000))
	}
	if !plan.Remaining.Equal(thb(35000)) {
		t.Errorf("remaining = %s, want %s", plan.Remaining, thb(35000))
	}
}

func TestFlat_allPricesUnavailable(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.6, "BBB", 0.4), "THB")

	plan, err := planner.Flat(on, thb(1000), NewPriceBook("USD"), Rate{Value: decimal.NewFromInt(35)})
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if len(plan.Lines) != 0 {
		t.Errorf("plan has %d lines, want 0", len(plan.Lines))
	}
	if !plan.Remaining.Equal(thb(1000)) {
		t.Errorf("remaining = %s, want the full budget", plan.Remaining)
	}
	if got, want := plan.Missing, []string{"AAA", "BBB"}; !reflect.DeepEqual(got, want) {
		t.Errorf("missing = %v, want %v", got, want)
	}
}

func TestFlat_emptyProfile(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "THB"), "THB")

	plan, err := planner.Flat(on, thb(500), NewPriceBook("THB"), UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if len(plan.Lines) != 0 || !plan.Remaining.Equal(thb(500)) {
		t.Errorf("empty profile: lines = %d remaining = %s, want 0 lines and full budget", len(plan.Lines), plan.Remaining)
	}
}

func TestFlat_zeroBudget(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "THB", "AAA", 1.0), "THB")

	plan, err := planner.Flat(on, thb(0), bookOf("THB", "AAA", 10.0), UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if len(plan.Purchases()) != 0 {
		t.Errorf("zero budget bought something: %v", plan.Purchases())
	}
	if !plan.Remaining.IsZero() {
		t.Errorf("remaining = %s, want 0", plan.Remaining)
	}
}

func TestFlat_guards(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "THB", "AAA", 1.0), "THB")
	prices := bookOf("THB", "AAA", 10.0)

	if _, err := planner.Flat(on, thb(-1), prices, UnitRate()); err == nil {
		t.Error("Flat() accepted a negative budget")
	}
	if _, err := planner.Flat(on, thb(100), prices, Rate{}); err == nil {
		t.Error("Flat() accepted a zero exchange rate")
	}
	if _, err := planner.Flat(on, usd(100), prices, UnitRate()); err == nil {
		t.Error("Flat() accepted a budget in the wrong currency")
	}
	if _, err := planner.Flat(on, thb(100), bookOf("USD", "AAA", 10.0), UnitRate()); err == nil {
		t.Error("Flat() accepted prices in the wrong currency")
	}
}

func TestFlat_idempotent(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.6, "BBB", 0.4), "THB")
	prices := bookOf("USD", "AAA", 123.45, "BBB", 67.89)
	rate := Rate{Value: decimal.NewFromFloat(34.5)}

	a, err := planner.Flat(on, thb(10000), prices, rate)
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	b, err := planner.Flat(on, thb(10000), prices, rate)
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Flat() is not deterministic for identical inputs")
	}
}

func TestFlat_roundingDriftBounded(t *testing.T) {
	// 4-decimal rounding can push the spend slightly over budget but never
	// more than 1% of it.
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.5, "BBB", 0.5), "THB")
	prices := bookOf("USD", "AAA", 3.33, "BBB", 7.77)
	rate := Rate{Value: decimal.NewFromFloat(33.33)}

	budget := thb(9999.99)
	plan, err := planner.Flat(on, budget, prices, rate)
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	bound := budget.Amount().Mul(decimal.NewFromFloat(0.01)).Neg()
	if plan.Remaining.Amount().LessThan(bound) {
		t.Errorf("remaining = %s, drifted below -1%% of budget", plan.Remaining)
	}
}

func TestRebalance_scenario(t *testing.T) {
	// Holdings {AAA: 6} at prices {AAA:100, BBB:50}, budget $500 worth:
	// total wealth target 1100; AAA target 660 vs 600 → shortfall 60;
	// BBB target 440 vs 0 → shortfall 440, funded with what is left.
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.6, "BBB", 0.4), "THB")
	prices := bookOf("USD", "AAA", 100.0, "BBB", 50.0)
	holdings := Holdings{"AAA": Q(6)}

	plan, err := planner.Rebalance(on, thb(500), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}

	if len(plan.Lines) != 2 {
		t.Fatalf("Rebalance() produced %d lines, want 2", len(plan.Lines))
	}
	aaa, bbb := plan.Lines[0], plan.Lines[1]
	if !aaa.Quantity.Equal(Q(0.6)) {
		t.Errorf("AAA quantity = %s, want 0.6", aaa.Quantity)
	}
	if aaa.Status != StatusUnderweight {
		t.Errorf("AAA status = %s, want underweight", aaa.Status)
	}
	if !bbb.Quantity.Equal(Q(8.8)) {
		t.Errorf("BBB quantity = %s, want 8.8", bbb.Quantity)
	}
	if !plan.Remaining.IsZero() {
		t.Errorf("remaining = %s, want 0", plan.Remaining)
	}
}

func TestRebalance_declaredOrderFunding(t *testing.T) {
	// AAA shortfall 10, BBB shortfall 100, CCC overweight, budget 50.
	// Declared order wins: AAA funded in full, BBB gets the remaining 40.
	// A proportional-to-shortfall policy would give AAA about 4.5.
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.2, "BBB", 0.4, "CCC", 0.4), "THB")
	prices := bookOf("USD", "AAA", 1.0, "BBB", 1.0, "CCC", 1.0)
	holdings := Holdings{"AAA": Q(210), "BBB": Q(340), "CCC": Q(500)}

	plan, err := planner.Rebalance(on, thb(50), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}

	aaa, bbb, ccc := plan.Lines[0], plan.Lines[1], plan.Lines[2]
	if !aaa.Cost.Equal(usd(10)) {
		t.Errorf("AAA cost = %s, want %s (funded in full, first in order)", aaa.Cost, usd(10))
	}
	if !bbb.Cost.Equal(usd(40)) {
		t.Errorf("BBB cost = %s, want %s (whatever budget is left)", bbb.Cost, usd(40))
	}
	if ccc.Status != StatusOverweight {
		t.Errorf("CCC status = %s, want overweight", ccc.Status)
	}
	if !ccc.Quantity.IsZero() {
		t.Errorf("CCC quantity = %s, overweight assets are never trimmed", ccc.Quantity)
	}
}

func TestRebalance_neverSells(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.5, "BBB", 0.5), "THB")
	prices := bookOf("USD", "AAA", 10.0, "BBB", 20.0)
	holdings := Holdings{"AAA": Q(1000), "BBB": Q(1)}

	plan, err := planner.Rebalance(on, thb(100), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	for _, line := range plan.Lines {
		if line.Quantity.IsNegative() {
			t.Errorf("%s quantity = %s, must never be negative", line.Ticker, line.Quantity)
		}
	}
}

func TestRebalance_negligibleBuySkipped(t *testing.T) {
	// Whole target weight on one asset: the shortfall is exactly the
	// budget. $5 against a $100 share is below the 10% threshold.
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 1.0), "THB")
	prices := bookOf("USD", "AAA", 100.0)
	holdings := Holdings{"AAA": Q(3)}

	plan, err := planner.Rebalance(on, thb(5), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	line := plan.Lines[0]
	if !line.Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0 for a negligible spend", line.Quantity)
	}
	if line.Status != StatusUnderweight {
		t.Errorf("status = %s, want underweight even when skipped", line.Status)
	}
	if !plan.Remaining.Equal(thb(5)) {
		t.Errorf("remaining = %s, want the whole budget", plan.Remaining)
	}

	// Just above the threshold the buy happens.
	plan, err = planner.Rebalance(on, thb(10), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if got, want := plan.Lines[0].Quantity, Q(0.1); !got.Equal(want) {
		t.Errorf("quantity = %s, want %s at the threshold", got, want)
	}
}

func TestRebalance_allPricesUnavailable(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 0.6, "BBB", 0.4), "THB")

	plan, err := planner.Rebalance(on, thb(1000), NewPriceBook("USD"), Rate{Value: decimal.NewFromInt(35)}, Holdings{})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if len(plan.Lines) != 0 {
		t.Errorf("plan has %d lines, want 0", len(plan.Lines))
	}
	if !plan.Remaining.Equal(thb(1000)) {
		t.Errorf("remaining = %s, want the full budget", plan.Remaining)
	}
}

func TestRebalance_wholeUnitMarket(t *testing.T) {
	// Local-currency portfolio truncates to whole shares: a shortfall
	// smaller than one share buys nothing.
	planner := mustPlanner(t, profileOf("Min", "THB", "AAA", 1.0), "THB")
	prices := bookOf("THB", "AAA", 100.0)
	holdings := Holdings{"AAA": Q(1)}

	plan, err := planner.Rebalance(on, thb(60), prices, UnitRate(), holdings)
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if !plan.Lines[0].Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0 (cannot buy 0.6 of a whole-unit share)", plan.Lines[0].Quantity)
	}
	if !plan.Remaining.Equal(thb(60)) {
		t.Errorf("remaining = %s, want the whole budget", plan.Remaining)
	}
}

func TestPlanPurchases(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 1.0), "THB")
	prices := bookOf("USD", "AAA", 100.0)

	plan, err := planner.Rebalance(on, thb(5), prices, UnitRate(), Holdings{"AAA": Q(3)})
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if len(plan.Lines) != 1 {
		t.Fatalf("plan has %d lines, want 1", len(plan.Lines))
	}
	if len(plan.Purchases()) != 0 {
		t.Errorf("Purchases() = %v, want none for a zero-quantity line", plan.Purchases())
	}
}
