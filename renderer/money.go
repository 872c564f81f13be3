// Package renderer presents backtest results: a markdown summary for the
// terminal and a PNG chart of net worth over time.
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// usd formats an amount as US dollars, e.g. "$12,869.40".
func usd(v decimal.Decimal) string {
	// the Money constructor is the only way to a never-nil currency
	cur := money.New(0, money.USD).Currency()
	return cur.Formatter().Format(v.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
