package wealthos

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProject_foreignMarket(t *testing.T) {
	// USD profile funded in THB compounds at the foreign rate.
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 1.0), "THB")
	projection := planner.Project(thb(10000), 3)

	if !projection.AnnualReturn.Equal(foreignAnnualReturn) {
		t.Errorf("AnnualReturn = %s, want %s", projection.AnnualReturn, foreignAnnualReturn)
	}
	if len(projection.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3", len(projection.Points))
	}

	// value(y) = 10000 × 12 × y × 1.10^y
	want := []struct {
		year  int
		value int64
	}{
		{1, 132000},
		{2, 290400},
		{3, 479160},
	}
	for i, w := range want {
		p := projection.Points[i]
		if p.Year != w.year {
			t.Errorf("Points[%d].Year = %d, want %d", i, p.Year, w.year)
		}
		if !p.Value.Amount().Equal(decimal.NewFromInt(w.value)) {
			t.Errorf("value(%d) = %s, want %d", w.year, p.Value.Amount(), w.value)
		}
		if p.Value.Currency() != "THB" {
			t.Errorf("value(%d) currency = %s, want THB", w.year, p.Value.Currency())
		}
	}
}

func TestProject_localMarket(t *testing.T) {
	planner := mustPlanner(t, profileOf("Mom", "THB", "GOLD", 1.0), "THB")
	projection := planner.Project(thb(10000), 2)

	if !projection.AnnualReturn.Equal(localAnnualReturn) {
		t.Errorf("AnnualReturn = %s, want %s", projection.AnnualReturn, localAnnualReturn)
	}
	// value(2) = 10000 × 12 × 2 × 1.08² = 279936
	got := projection.Points[1].Value.Amount()
	if !got.Equal(decimal.NewFromInt(279936)) {
		t.Errorf("value(2) = %s, want 279936", got)
	}
}

func TestProject_zeroHorizon(t *testing.T) {
	planner := mustPlanner(t, profileOf("Min", "USD", "AAA", 1.0), "THB")
	if points := planner.Project(thb(10000), 0).Points; len(points) != 0 {
		t.Errorf("len(Points) = %d, want 0", len(points))
	}
}
