package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/apisit/wealthos"
	"github.com/apisit/wealthos/date"
	"github.com/apisit/wealthos/news"
	"github.com/shopspring/decimal"
)

func usdProfile() *wealthos.Profile {
	return &wealthos.Profile{
		Name:     "Min",
		Currency: "USD",
		Assets: []wealthos.Asset{
			{Ticker: "AAA", Weight: decimal.NewFromFloat(0.6)},
			{Ticker: "BBB", Weight: decimal.NewFromFloat(0.4)},
		},
	}
}

func testPlan(t *testing.T) *wealthos.Plan {
	t.Helper()
	planner, err := wealthos.NewPlanner(usdProfile(), "USD")
	if err != nil {
		t.Fatalf("NewPlanner() error = %v", err)
	}
	prices := wealthos.NewPriceBook("USD")
	prices.Set("AAA", decimal.NewFromInt(100))
	// BBB left unavailable on purpose
	plan, err := planner.Flat(date.New(2025, time.September, 1), wealthos.M(1000, "USD"), prices, wealthos.UnitRate())
	if err != nil {
		t.Fatalf("Flat() error = %v", err)
	}
	return plan
}

func TestPlanMarkdown(t *testing.T) {
	got := PlanMarkdown(testPlan(t))

	for _, want := range []string{
		"Buy Plan for Min on 2025-09-01",
		"AAA",
		"Remaining:",
		"No price available for: BBB",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PlanMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestPlanText(t *testing.T) {
	got := PlanText(testPlan(t))

	for _, want := range []string{
		"Investment plan for Min",
		"Date: 2025-09-01",
		"Budget:",
		"- AAA: 6 shares",
		"Remaining:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PlanText() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "BBB") {
		t.Errorf("PlanText() must not list unpriced tickers:\n%s", got)
	}
}

func TestReviewMarkdown_unpricedLine(t *testing.T) {
	ledger := wealthos.NewLedger()
	ledger.Append(wealthos.Record{
		Date:     date.New(2025, time.August, 1),
		User:     "Min",
		Ticker:   "AAA",
		Quantity: wealthos.Q(5),
		Price:    wealthos.M(100, "USD"),
		Cost:     wealthos.M(17500, "THB"),
		Source:   wealthos.SourceFlat,
	})

	review := wealthos.NewReview(date.New(2025, time.September, 1), usdProfile(), ledger,
		wealthos.NewPriceBook("USD"), wealthos.Rate{Value: decimal.NewFromInt(35)}, "THB")
	got := ReviewMarkdown(review)

	if !strings.Contains(got, "AAA") {
		t.Errorf("ReviewMarkdown() missing held ticker:\n%s", got)
	}
	if !strings.Contains(got, "n/a") {
		t.Errorf("ReviewMarkdown() should flag unpriced lines with n/a:\n%s", got)
	}
}

func TestHeadlinesMarkdown(t *testing.T) {
	got := HeadlinesMarkdown(nil)
	if !strings.Contains(got, "No headlines.") {
		t.Errorf("HeadlinesMarkdown(nil) = %q", got)
	}

	got = HeadlinesMarkdown([]news.Headline{{Title: "Rally", Link: "https://example.com/a"}})
	if !strings.Contains(got, "[Rally](https://example.com/a)") {
		t.Errorf("HeadlinesMarkdown() = %q", got)
	}
}
