// Package yahoo fetches latest traded prices and exchange rates from the
// Yahoo Finance chart API. Prices are fetched fresh on every call, one
// ticker at a time; there is no caching and no staleness tracking.
package yahoo

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// baseURL is a variable so tests can point the source at a local server.
var baseURL = "https://query1.finance.yahoo.com"

// Source provides latest prices and FX rates.
type Source struct {
	client *http.Client
}

// New returns a price source backed by the public chart endpoint.
func New() *Source {
	return &Source{client: new(http.Client)}
}

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {
	                    "currency": "USD",
	                    "symbol": "SCHD",
	                    "regularMarketPrice": 28.32
	                },
	                "indicators": {
	                    "quote": [ { "close": [28.1, 28.32] } ]
	                }
	            }
	        ],
	        "error": null
	    }
	}
*/
func (s *Source) chart(ticker string) (any, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", baseURL, url.PathEscape(ticker))
	var jobj any
	if err := jwget(s.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", ticker, err)
	}
	return jobj, nil
}

// extract reads a single float from the chart document at path. jsonpath is
// never clear about whether it returns a list of one answer or a single
// answer, so both are accepted.
func extract(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}

// LatestPrice returns the latest traded price of a ticker in its native
// currency. It prefers the live regular-market price and falls back to the
// last daily close when the market figure is absent.
func (s *Source) LatestPrice(ticker string) (float64, error) {
	jobj, err := s.chart(ticker)
	if err != nil {
		return 0, err
	}
	price, err := extract(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		// off-hours some feeds omit the market price, the last close is the truth then
		price, err = extract(jobj, "$.chart.result[0].indicators.quote[0].close[-1:]")
		if err != nil {
			return 0, fmt.Errorf("no price for %q: %w", ticker, err)
		}
	}
	if price <= 0 {
		return 0, fmt.Errorf("no positive price for %q: got %v", ticker, price)
	}
	return price, nil
}

// LatestRate returns the latest from→to exchange rate, in 'to' units per one
// 'from' unit, using Yahoo's synthetic currency-pair tickers ("USDTHB=X").
func (s *Source) LatestRate(from, to string) (float64, error) {
	rate, err := s.LatestPrice(from + to + "=X")
	if err != nil {
		return 0, fmt.Errorf("error fetching rate %s/%s: %w", from, to, err)
	}
	return rate, nil
}
