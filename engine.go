package capeval

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// Config collects everything needed to assemble a Backtest.
type Config struct {
	RatioFile string     // valuation-ratio input, "MM/YYYY,ratio" per line
	Symbol    string     // index symbol, e.g. "^GSPC"
	Window    date.Range // evaluation dates outside this window are dropped

	BuyThresholds  []decimal.Decimal
	SellThresholds []decimal.Decimal // empty means same as buy
	InitialCash    decimal.Decimal
	Income         decimal.Decimal
	Policy         Policy

	CacheDir string // where the per-symbol price cache file lives
	Quoter   Quoter // nil means the live Yahoo provider
}

// Result holds the per-investor per-period output of a run. The matrices are
// indexed [investor][period] and fully populated by one pass; readers must not
// mutate them.
type Result struct {
	Dates  []date.Date
	Worth  [][]decimal.Decimal
	Shares [][]decimal.Decimal
	Cash   [][]decimal.Decimal
}

func newResult(investors, periods int) *Result {
	res := &Result{
		Dates:  make([]date.Date, periods),
		Worth:  make([][]decimal.Decimal, investors),
		Shares: make([][]decimal.Decimal, investors),
		Cash:   make([][]decimal.Decimal, investors),
	}
	for j := range investors {
		res.Worth[j] = make([]decimal.Decimal, periods)
		res.Shares[j] = make([]decimal.Decimal, periods)
		res.Cash[j] = make([]decimal.Decimal, periods)
	}
	return res
}

// Backtest drives a set of investors through a valuation series. Assemble one
// with New, then call Run once; investor state is consumed by the pass.
type Backtest struct {
	Series    []ValuationPoint
	Investors []*Investor
	Oracle    *Oracle

	cacheDir string

	// Logf reports prices and trades as the run progresses. Defaults to
	// log.Printf; replace to silence or redirect.
	Logf func(format string, args ...any)
}

// New validates cfg, loads the valuation series and the price cache, and
// returns a ready-to-run backtest.
func New(cfg Config) (*Backtest, error) {
	sells := cfg.SellThresholds
	if len(sells) == 0 {
		sells = cfg.BuyThresholds
	}
	if len(cfg.BuyThresholds) != len(sells) {
		return nil, fmt.Errorf("%w: %d buy vs %d sell", ErrInvalidConfiguration, len(cfg.BuyThresholds), len(sells))
	}

	series, err := LoadValuationSeries(cfg.RatioFile, cfg.Window)
	if err != nil {
		return nil, err
	}

	cache, err := LoadPriceCache(cfg.CacheDir, cfg.Symbol)
	if err != nil {
		return nil, err
	}
	quoter := cfg.Quoter
	if quoter == nil {
		quoter = NewYahooQuoter()
	}

	investors := make([]*Investor, len(cfg.BuyThresholds))
	for i, buy := range cfg.BuyThresholds {
		inv := NewInvestor(buy, sells[i], cfg.InitialCash, cfg.Income)
		inv.Policy = cfg.Policy
		investors[i] = inv
	}

	return &Backtest{
		Series:    series,
		Investors: investors,
		Oracle:    NewOracle(cfg.Symbol, quoter, cache),
		cacheDir:  cfg.CacheDir,
	}, nil
}

// Run executes the simulation pass: for every period, resolve the price, then
// pay, react, and record every investor. Any price resolution failure aborts
// the whole run with no partial result. On success the price cache is saved
// exactly once.
func (b *Backtest) Run() (*Result, error) {
	res := newResult(len(b.Investors), len(b.Series))
	for i, pt := range b.Series {
		price, err := b.Oracle.Resolve(pt.On)
		if err != nil {
			return nil, err
		}
		b.logf("close of %s on %s: %s", b.Oracle.Symbol, pt.On, price)

		for j, inv := range b.Investors {
			inv.ReceiveIncome()
			action, err := inv.React(pt.Ratio, price)
			if err != nil {
				return nil, fmt.Errorf("investor %d on %s: %w", j, pt.On, err)
			}
			if action != Hold {
				b.logf("investor %d (buy at %s) %ss at %s on ratio %s", j, inv.BuyAt, action, price, pt.Ratio)
			}
			res.Worth[j][i] = inv.NetWorth(price)
			res.Shares[j][i] = inv.Shares
			res.Cash[j][i] = inv.Cash
		}
		res.Dates[i] = pt.On
	}
	if err := b.Oracle.Cache.Save(b.cacheDir); err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Backtest) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
