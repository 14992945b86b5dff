package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/apisit/wealthos/agent"
	"github.com/apisit/wealthos/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd sends a member's review to the AI analyst for a plain-language
// summary. Extra arguments become a follow-up question.
type assistCmd struct {
	user string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "summarize a member's portfolio with the AI analyst" }
func (*assistCmd) Usage() string {
	return `wos assist -u <member> [question...]

  Value the member's portfolio and ask the AI analyst for a plain-language
  summary. Any remaining arguments are asked as a follow-up question about
  the same report.

  Requires a GEMINI_API_KEY in the environment or in a .env file.

Usage Examples:
$ wos assist -u Min
$ wos assist -u Min which position drifted the most?
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Member whose portfolio to discuss.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	review := &reviewCmd{user: c.user}
	r, err := review.generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report := renderer.ReviewMarkdown(r)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst()
	summary, err := analyst.Summarize(ctx, client, report)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(summary)

	if f.NArg() > 0 {
		question := strings.Join(f.Args(), " ")
		answer, err := analyst.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Analyst failed:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(answer)
	}
	return subcommands.ExitSuccess
}
