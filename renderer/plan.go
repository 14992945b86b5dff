// Package renderer turns reports into markdown for the terminal and into
// plain text for chat-style sharing.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apisit/wealthos"
	md "github.com/nao1215/markdown"
)

// PlanMarkdown renders the structured buy-plan table.
func PlanMarkdown(p *wealthos.Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Buy Plan for %s on %s", p.User, p.Date))
	doc.PlainText(fmt.Sprintf("Budget: %s (%s in %s at rate %s%s)",
		p.Budget, p.BudgetQuote, p.Currency, p.Rate.Value, fallbackMark(p.Rate)))

	table := md.TableSet{
		Header: []string{"Ticker", "Price", "Quantity", fmt.Sprintf("Cost (%s)", p.Currency), fmt.Sprintf("Cost (%s)", p.LocalCurrency), "Status"},
	}
	for _, line := range p.Lines {
		status := line.Status.String()
		if status == "" {
			status = "-"
		}
		table.Rows = append(table.Rows, []string{
			line.Ticker,
			line.Price.String(),
			line.Quantity.String(),
			line.Cost.String(),
			line.CostLocal.String(),
			status,
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("Total: %s, Remaining: %s", p.TotalLocal, p.Remaining))
	if len(p.Missing) > 0 {
		doc.PlainText(fmt.Sprintf("No price available for: %s", strings.Join(p.Missing, ", ")))
	}
	return doc.String()
}

// PlanText renders the chat-shareable summary: user, date, budget, each
// non-zero purchase, and the remaining funds.
func PlanText(p *wealthos.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Investment plan for %s\n", p.User)
	fmt.Fprintf(&b, "Date: %s\n", p.Date)
	fmt.Fprintf(&b, "Budget: %s\n", p.Budget)
	if p.Rate.Fallback {
		fmt.Fprintf(&b, "Rate: %s (fallback)\n", p.Rate.Value)
	}

	purchases := p.Purchases()
	if len(purchases) == 0 {
		fmt.Fprintf(&b, "\nNothing to buy this month.\n")
	} else {
		fmt.Fprintf(&b, "\nTo buy:\n")
		for _, line := range purchases {
			fmt.Fprintf(&b, "- %s: %s shares at %s (~%s)\n",
				line.Ticker, line.Quantity, line.Price, line.CostLocal)
		}
	}

	fmt.Fprintf(&b, "\nRemaining: %s\n", p.Remaining)
	return b.String()
}

func fallbackMark(r wealthos.Rate) string {
	if r.Fallback {
		return ", fallback"
	}
	return ""
}
