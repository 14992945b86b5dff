package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/apisit/wealthos/news"
	"github.com/apisit/wealthos/renderer"
	"github.com/google/subcommands"
)

type newsCmd struct {
	feed  string
	limit int
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "show the latest market headlines" }
func (*newsCmd) Usage() string {
	return `wos news [-feed <url>] [-n <count>]

  Show the latest headlines from the configured market news feed.
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.feed, "feed", "", "RSS feed to read. Defaults to the configured one.")
	f.IntVar(&c.limit, "n", 5, "Number of headlines to show.")
}

func (c *newsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	feed := c.feed
	if feed == "" {
		feed = cfg.NewsFeed
	}

	headlines, err := news.Fetch(http.DefaultClient, feed, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching news: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HeadlinesMarkdown(headlines))
	return subcommands.ExitSuccess
}
