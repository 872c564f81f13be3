// Package capeval backtests a threshold strategy driven by a valuation ratio
// (CAPE-style) against the historical prices of a single market index.
//
// Each simulated investor receives a periodic income and follows one rule: when
// the ratio is at or below its buy threshold it moves all cash into the index,
// and once the ratio exceeds its sell threshold it moves everything back to
// cash. There are no partial trades, fees, margin, or short positions.
//
// The core pieces are:
//   - Valuation series: "MM/YYYY,ratio" records resolved to the last business
//     day of each month (ResolveEvaluationDate, LoadValuationSeries).
//   - Price oracle: resolves the index close for an evaluation date, stepping
//     backward over weekends and market holidays, with a durable per-symbol
//     cache so repeat runs make no network calls (Oracle, PriceCache).
//   - Simulation: drives every investor through the series in chronological
//     order and records net worth, shares, and cash per period (Backtest).
//
// This package is the foundational logic for the `capeval` command-line tool.
package capeval
