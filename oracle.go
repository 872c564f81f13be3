package capeval

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// Quoter provides the close price of a symbol for a single calendar day. It is
// the only network dependency of a run; tests inject fakes.
type Quoter interface {
	DailyClose(symbol string, on date.Date) (decimal.Decimal, error)
}

// Oracle resolves the market price for an evaluation date. A date the market
// was closed on (weekend, holiday) is resolved by walking backward one weekday
// at a time, and every successful resolution is written through to the cache
// under the day that actually served it.
type Oracle struct {
	Symbol string
	Quoter Quoter
	Cache  *PriceCache

	// Retries is how many earlier days may be tried after the first miss.
	Retries int

	// NormalizeWeekends steps the requested date back to a weekday before any
	// lookup. The historical variant relied purely on miss-and-retry; keep
	// this on unless reproducing that behavior.
	NormalizeWeekends bool
}

// NewOracle returns an oracle with the default retry budget of 2.
func NewOracle(symbol string, q Quoter, cache *PriceCache) *Oracle {
	return &Oracle{Symbol: symbol, Quoter: q, Cache: cache, Retries: 2, NormalizeWeekends: true}
}

// Resolve returns the close price for on, consulting the cache before the
// quoter. It fails with ErrPriceUnavailable once the retry budget is spent.
func (o *Oracle) Resolve(on date.Date) (decimal.Decimal, error) {
	day := on
	if o.NormalizeWeekends {
		for isWeekend(day) {
			day = day.Add(-1)
		}
	}
	var lastErr error
	for try := 0; ; try++ {
		if price, ok := o.Cache.Get(day); ok {
			return price, nil
		}
		price, err := o.Quoter.DailyClose(o.Symbol, day)
		if err == nil {
			o.Cache.Put(day, price)
			return price, nil
		}
		lastErr = err
		if try >= o.Retries {
			break
		}
		day = day.Add(-1)
		for isWeekend(day) {
			day = day.Add(-1)
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s on %s: %v", ErrPriceUnavailable, o.Symbol, on, lastErr)
}
