package news

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Market News</title>
    <item>
      <title>Stocks rally on rate cut hopes</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 01 Sep 2025 08:30:00 +0000</pubDate>
    </item>
    <item>
      <title>Chip maker beats estimates</title>
      <link>https://example.com/b</link>
      <pubDate>Mon, 01 Sep 2025 07:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No date on this one</title>
      <link>https://example.com/c</link>
    </item>
  </channel>
</rss>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feed)
	}))
	defer srv.Close()

	headlines, err := Fetch(srv.Client(), srv.URL, 0)
	if err != nil {
		t.Fatalf("Fetch() unexpected error = %v", err)
	}
	if len(headlines) != 3 {
		t.Fatalf("Fetch() returned %d headlines, want 3", len(headlines))
	}
	if got, want := headlines[0].Title, "Stocks rally on rate cut hopes"; got != want {
		t.Errorf("headline title = %q, want %q", got, want)
	}
	if headlines[0].Published.IsZero() {
		t.Error("RFC1123Z pubDate was not parsed")
	}
	if headlines[1].Published.IsZero() {
		t.Error("RFC1123 pubDate was not parsed")
	}
	if !headlines[2].Published.IsZero() {
		t.Error("missing pubDate should stay zero")
	}
}

func TestFetch_limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feed)
	}))
	defer srv.Close()

	headlines, err := Fetch(srv.Client(), srv.URL, 2)
	if err != nil {
		t.Fatalf("Fetch() unexpected error = %v", err)
	}
	if len(headlines) != 2 {
		t.Errorf("Fetch() returned %d headlines, want 2", len(headlines))
	}
}

func TestFetch_badFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not xml {")
	}))
	defer srv.Close()

	if _, err := Fetch(srv.Client(), srv.URL, 0); err == nil {
		t.Error("Fetch() expected an error for a malformed feed")
	}
}

func TestFetch_unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := Fetch(srv.Client(), srv.URL, 0); err == nil {
		t.Error("Fetch() expected an error for a non-200 response")
	}
}
