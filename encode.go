package wealthos

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apisit/wealthos/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL: one record per line, fields in a fixed
// order so the file stays human-readable and git-friendly.

// MarshalJSON implements the json.Marshaler interface for Record.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("user", r.User)
	w.Append("ticker", r.Ticker)
	w.Append("quantity", r.Quantity)
	w.Append("price", r.Price.Amount())
	w.Append("currency", r.Price.Currency())
	w.Append("cost", r.Cost.Amount())
	w.Append("costCurrency", r.Cost.Currency())
	w.Optional("source", r.Source)
	return w.MarshalJSON()
}

// jrecord is the decoding proxy for Record: amounts and currencies are
// stored as separate fields.
type jrecord struct {
	Date         date.Date       `json:"date"`
	User         string          `json:"user"`
	Ticker       string          `json:"ticker"`
	Quantity     Quantity        `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Cost         decimal.Decimal `json:"cost"`
	CostCurrency string          `json:"costCurrency"`
	Source       string          `json:"source"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var j jrecord
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.User == "" {
		return fmt.Errorf("record has no user")
	}
	if j.Ticker == "" {
		return fmt.Errorf("record has no ticker")
	}
	*r = Record{
		Date:     j.Date,
		User:     j.User,
		Ticker:   j.Ticker,
		Quantity: j.Quantity,
		Price:    M(j.Price, j.Currency),
		Cost:     M(j.Cost, j.CostCurrency),
		Source:   j.Source,
	}
	return nil
}

// DecodeLedger decodes records from a stream of JSONL data, one record per
// line, and returns the ledger. Empty lines are skipped.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("invalid ledger line %d %q: %w", n, string(line), err)
		}
		ledger.Append(record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeRecords appends records to the writer, one JSONL line each.
//
// The write is best-effort: on a mid-batch failure the records before the
// failing one are already written. The number of fully written records is
// returned so the caller can report or retry the rest.
func EncodeRecords(w io.Writer, records ...Record) (int, error) {
	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return i, fmt.Errorf("could not encode record for %s: %w", record.Ticker, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return i, fmt.Errorf("could not write record for %s: %w", record.Ticker, err)
		}
	}
	return len(records), nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form.
func EncodeLedger(w io.Writer, l *Ledger) error {
	_, err := EncodeRecords(w, l.records...)
	return err
}
