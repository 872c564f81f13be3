package capeval

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// dec is a helper for tests to build decimals from string constants.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// decs builds a threshold list from string constants.
func decs(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = dec(s)
	}
	return out
}

// staticQuoter serves closes from a fixed table and counts every call. Days
// not in the table fail with ErrNoData.
type staticQuoter struct {
	closes map[date.Date]decimal.Decimal
	calls  int
}

func (q *staticQuoter) DailyClose(symbol string, on date.Date) (decimal.Decimal, error) {
	q.calls++
	if p, ok := q.closes[on]; ok {
		return p, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s on %s", ErrNoData, symbol, on)
}

// closeTo reports whether two decimals agree within 1e-9, for assertions that
// cross a division.
func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(dec("0.000000001"))
}
