package renderer

import (
	"bytes"
	"fmt"

	"github.com/apisit/wealthos"
	md "github.com/nao1215/markdown"
)

// ReviewMarkdown renders the profit/loss review table.
func ReviewMarkdown(r *wealthos.Review) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Review for %s on %s", r.User, r.Date))

	if len(r.Lines) == 0 {
		doc.PlainText("No recorded holdings yet.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Ticker", "Shares", "Cost Basis", "Price", "Market Value", "Gain", "Gain %"},
	}
	for _, line := range r.Lines {
		price, value, gain, ratio := "n/a", "n/a", "n/a", "n/a"
		if line.Priced {
			price = line.Price.String()
			value = line.MarketValue.String()
			gain = line.Gain.SignedString()
			ratio = fmt.Sprintf("%+.2f%%", line.GainRatio()*100)
		}
		table.Rows = append(table.Rows, []string{
			line.Ticker,
			line.Quantity.String(),
			line.CostBasis.String(),
			price,
			value,
			gain,
			ratio,
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("Total cost: %s, Market value: %s, Unrealized gain: %s",
		r.TotalCost, r.TotalValue, r.TotalGain.SignedString()))
	return doc.String()
}
