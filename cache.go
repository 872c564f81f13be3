package capeval

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// PriceCache maps evaluation dates to resolved close prices for one symbol.
// It is loaded once before a run, appended to by the oracle, and saved once
// after the run completes. Entries are never invalidated.
//
// On disk it is a JSONL file per symbol, one {"on": ..., "close": ...} object
// per line, in chronological order so the file diffs cleanly. Prices are
// persisted as decimal strings and round-trip exactly.
type PriceCache struct {
	symbol string
	prices map[date.Date]decimal.Decimal
}

// NewPriceCache returns an empty cache for symbol.
func NewPriceCache(symbol string) *PriceCache {
	return &PriceCache{symbol: symbol, prices: make(map[date.Date]decimal.Decimal)}
}

// LoadPriceCache reads the persisted cache for symbol from dir. A missing file
// is an empty cache, not an error.
func LoadPriceCache(dir, symbol string) (*PriceCache, error) {
	c := NewPriceCache(symbol)
	filename := filepath.Join(dir, c.Filename())
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price cache: %w", err)
	}
	defer f.Close()
	if err := c.decode(f, filename); err != nil {
		return nil, err
	}
	return c, nil
}

// Filename returns the name of the file the cache persists to.
func (c *PriceCache) Filename() string { return fmt.Sprintf(".cache_%s.jsonl", c.symbol) }

// Symbol returns the index symbol the cache is keyed by.
func (c *PriceCache) Symbol() string { return c.symbol }

// Len returns the number of cached prices.
func (c *PriceCache) Len() int { return len(c.prices) }

// Get returns the cached price for day, if any.
func (c *PriceCache) Get(day date.Date) (decimal.Decimal, bool) {
	p, ok := c.prices[day]
	return p, ok
}

// Put stores the price for day, overwriting any previous entry.
func (c *PriceCache) Put(day date.Date, price decimal.Decimal) { c.prices[day] = price }

// Days returns the cached dates in chronological order.
func (c *PriceCache) Days() []date.Date {
	days := make([]date.Date, 0, len(c.prices))
	for day := range c.prices {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// jprice is the persisted shape of one cache entry.
type jprice struct {
	On    date.Date       `json:"on"`
	Close decimal.Decimal `json:"close"`
}

// decode parses the JSONL cache content. filename is for error messages only.
func (c *PriceCache) decode(r io.Reader, filename string) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jp jprice
		if err := json.Unmarshal(line, &jp); err != nil {
			return fmt.Errorf("parse error %s:%d: %w", filename, n, err)
		}
		c.prices[jp.On] = jp.Close
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return nil
}

// Save writes the whole cache to dir, replacing any previous file.
func (c *PriceCache) Save(dir string) error {
	filename := filepath.Join(dir, c.Filename())
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot write price cache: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, day := range c.Days() {
		line, err := json.Marshal(jprice{On: day, Close: c.prices[day]})
		if err != nil {
			f.Close()
			return fmt.Errorf("cannot encode price cache entry %s: %w", day, err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cannot write price cache: %w", err)
	}
	return f.Close()
}
