package renderer

import (
	"bytes"
	"fmt"

	"github.com/apisit/wealthos"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ProjectionMarkdown renders the compounding outlook table.
func ProjectionMarkdown(p *wealthos.Projection) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Snowball Projection")
	doc.PlainText(fmt.Sprintf("Monthly budget %s at an expected %s%% annual return.",
		p.MonthlyBudget, p.AnnualReturn.Mul(hundred)))

	table := md.TableSet{Header: []string{"Year", "Projected Value"}}
	for _, point := range p.Points {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", point.Year),
			point.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
