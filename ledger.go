package wealthos

import (
	"sort"
	"strings"

	"github.com/apisit/wealthos/date"
)

// Record is one persisted purchase: a single ledger row. Rows are only ever
// appended, never updated or deleted.
type Record struct {
	Date     date.Date
	User     string
	Ticker   string
	Quantity Quantity // shares bought
	Price    Money    // unit price, portfolio currency
	Cost     Money    // total cost, local currency
	Source   string   // which operation produced the row (flat, rebalance, manual)
}

// RecordsFromPlan turns a plan's actual purchases into ledger rows.
// Zero-quantity lines are not recorded.
func RecordsFromPlan(plan *Plan) []Record {
	var records []Record
	for _, line := range plan.Purchases() {
		records = append(records, Record{
			Date:     plan.Date,
			User:     plan.User,
			Ticker:   line.Ticker,
			Quantity: line.Quantity,
			Price:    line.Price,
			Cost:     line.CostLocal,
			Source:   plan.Source,
		})
	}
	return records
}

// Holdings is the cumulative share count per ticker, derived from a user's
// ledger history. Tickers with no history hold zero.
type Holdings map[string]Quantity

// Get returns the held quantity for a ticker, zero when absent.
func (h Holdings) Get(ticker string) Quantity { return h[ticker] }

// Ledger is the in-memory view of the transaction history.
type Ledger struct {
	records []Record
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make([]Record, 0)}
}

// Append adds records to the ledger.
func (l *Ledger) Append(records ...Record) {
	l.records = append(l.records, records...)
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns all records, in ledger order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// UserRecords returns one user's records, in ledger order.
func (l *Ledger) UserRecords(user string) []Record {
	var out []Record
	for _, r := range l.records {
		if r.User == user {
			out = append(out, r)
		}
	}
	return out
}

// Holdings derives the user's current position per ticker by summing their
// purchase history.
func (l *Ledger) Holdings(user string) Holdings {
	holdings := make(Holdings)
	for _, r := range l.records {
		if r.User != user {
			continue
		}
		holdings[r.Ticker] = holdings[r.Ticker].Add(r.Quantity)
	}
	return holdings
}

// CostBasis derives the user's accumulated local-currency cost per ticker.
// It is exactly the sum of the user's recorded costs, the figure P/L reports
// compare market value against.
func (l *Ledger) CostBasis(user string) map[string]Money {
	basis := make(map[string]Money)
	for _, r := range l.records {
		if r.User != user {
			continue
		}
		basis[r.Ticker] = basis[r.Ticker].Add(r.Cost)
	}
	return basis
}

// Fmt returns a canonical copy of the ledger: records sorted by date, then
// user, then ticker, with the original order preserved between equals.
func (l *Ledger) Fmt() *Ledger {
	out := NewLedger()
	out.Append(l.records...)
	sort.SliceStable(out.records, func(i, j int) bool {
		a, b := out.records[i], out.records[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.User != b.User {
			return strings.Compare(a.User, b.User) < 0
		}
		return strings.Compare(a.Ticker, b.Ticker) < 0
	})
	return out
}
