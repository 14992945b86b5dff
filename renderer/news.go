package renderer

import (
	"fmt"
	"strings"

	"github.com/apisit/wealthos/news"
)

// HeadlinesMarkdown renders a headline list.
func HeadlinesMarkdown(headlines []news.Headline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Market News\n\n")
	if len(headlines) == 0 {
		fmt.Fprintln(&b, "No headlines.")
		return b.String()
	}
	for _, h := range headlines {
		when := ""
		if !h.Published.IsZero() {
			when = fmt.Sprintf(" (%s)", h.Published.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "- [%s](%s)%s\n", h.Title, h.Link, when)
	}
	return b.String()
}
