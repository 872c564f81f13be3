package capeval

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy selects between the two historical variants of the decision rule.
// The zero value is the corrected behavior.
type Policy struct {
	// SellTriggerInclusive makes the sell trigger fire when the ratio equals
	// the sell threshold, not only when it strictly exceeds it.
	SellTriggerInclusive bool
}

// Action is what an investor did with a period's signal.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "hold"
}

// Investor is one simulated account driven by the valuation signal. It holds
// cash and shares of the index, never both mixed by its own trades: every buy
// and sell is a full-position move.
type Investor struct {
	BuyAt  decimal.Decimal // buy while the ratio is at or below this
	SellAt decimal.Decimal // sell once the ratio exceeds this
	Cash   decimal.Decimal
	Shares decimal.Decimal
	Income decimal.Decimal // cash received every period
	Policy Policy
}

// NewInvestor returns an account holding cash only.
func NewInvestor(buyAt, sellAt, cash, income decimal.Decimal) *Investor {
	return &Investor{BuyAt: buyAt, SellAt: sellAt, Cash: cash, Income: income}
}

// ReceiveIncome credits one period's income.
func (v *Investor) ReceiveIncome() { v.Cash = v.Cash.Add(v.Income) }

// NetWorth returns cash plus the market value of held shares.
func (v *Investor) NetWorth(price decimal.Decimal) decimal.Decimal {
	return v.Cash.Add(v.Shares.Mul(price))
}

// Liquidate sells the whole position at price. Shares are exactly zero after.
func (v *Investor) Liquidate(price decimal.Decimal) {
	v.Cash = v.Cash.Add(v.Shares.Mul(price))
	v.Shares = decimal.Zero
}

// AcquireAll spends all cash on shares at price. Cash is exactly zero after.
func (v *Investor) AcquireAll(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	v.Shares = v.Shares.Add(v.Cash.Div(price))
	v.Cash = decimal.Zero
	return nil
}

// React applies the decision rule for one period: sell check first, then buy,
// otherwise hold. At most one trade happens per period.
func (v *Investor) React(ratio, price decimal.Decimal) (Action, error) {
	switch {
	case v.Shares.IsPositive() && v.sellTriggered(ratio):
		v.Liquidate(price)
		return Sell, nil
	case v.Cash.IsPositive() && ratio.LessThanOrEqual(v.BuyAt):
		if err := v.AcquireAll(price); err != nil {
			return Hold, err
		}
		return Buy, nil
	}
	return Hold, nil
}

func (v *Investor) sellTriggered(ratio decimal.Decimal) bool {
	if v.Policy.SellTriggerInclusive {
		return ratio.GreaterThanOrEqual(v.SellAt)
	}
	return ratio.GreaterThan(v.SellAt)
}
