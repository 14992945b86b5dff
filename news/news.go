// Package news fetches market headlines from an RSS feed for the planner's
// news view. The feed is a plain RSS 2.0 document; only the fields the
// report shows are kept.
package news

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

// Headline is one news item.
type Headline struct {
	Title     string
	Link      string
	Published time.Time
}

// rss mirrors the subset of the RSS 2.0 document we read.
type rss struct {
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Fetch downloads and parses the feed, returning at most limit headlines in
// feed order. A limit of 0 returns them all.
func Fetch(client *http.Client, feedURL string, limit int) ([]Headline, error) {
	resp, err := client.Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch feed %q: %w", feedURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot fetch feed %q: %v", feedURL, resp.Status)
	}

	var doc rss
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse feed %q: %w", feedURL, err)
	}

	var headlines []Headline
	for _, item := range doc.Channel.Items {
		if limit > 0 && len(headlines) >= limit {
			break
		}
		h := Headline{Title: item.Title, Link: item.Link}
		// pubDate format varies between feeds, a missing one is not an error
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			h.Published = t
		} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			h.Published = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
