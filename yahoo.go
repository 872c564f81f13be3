package capeval

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// This file contains the live Quoter against the Yahoo Finance chart API, and
// the HTTP-level response cache it goes through. The HTTP cache is distinct
// from the PriceCache: it keys whole responses by request and current day, so
// repeated lookups the same day never hit the network twice even outside a
// full run.

// YahooQuoter fetches daily closes from the Yahoo Finance v8 chart API.
type YahooQuoter struct {
	client *http.Client
}

// NewYahooQuoter returns a quoter with a daily-expiring disk response cache.
func NewYahooQuoter() *YahooQuoter { return &YahooQuoter{client: daily()} }

// yahooChart is the part of the chart API payload the quoter reads.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// DailyClose returns the adjusted close of symbol for exactly the day on.
// Days the market has no bar for (holidays, weekends) fail with ErrNoData.
func (y *YahooQuoter) DailyClose(symbol string, on date.Date) (decimal.Decimal, error) {
	from := on.Unix()
	to := on.Add(1).Unix()
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		url.PathEscape(symbol), from, to)

	var payload yahooChart
	if err := jwget(y.client, addr, &payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s on %s: %v", ErrNoData, symbol, on, err)
	}
	if len(payload.Chart.Result) == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s on %s", ErrNoData, symbol, on)
	}
	bars := payload.Chart.Result[0]

	// Prefer the split-adjusted close, fall back to the raw quote close.
	var closes []float64
	if len(bars.Indicators.AdjClose) > 0 {
		closes = bars.Indicators.AdjClose[0].AdjClose
	} else if len(bars.Indicators.Quote) > 0 {
		closes = bars.Indicators.Quote[0].Close
	}
	for _, v := range closes {
		if v > 0 && !math.IsNaN(v) {
			return decimal.NewFromFloat(v), nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s on %s", ErrNoData, symbol, on)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the
// provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "curl/8")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// dayCache implements a disk cache for HTTP responses whose keys include the
// current day, so entries expire naturally overnight.
type dayCache struct {
	base http.RoundTripper
}

func (c *dayCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil { // cache hit
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *dayCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), "capeval-"+key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *dayCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), "capeval-"+key), content, 0644)
}

// daily returns a client whose responses are cached until the end of the day.
func daily() *http.Client {
	return &http.Client{Transport: &dayCache{http.DefaultTransport}}
}
