package capeval

import (
	"errors"
	"testing"
)

func TestReceiveIncome(t *testing.T) {
	inv := NewInvestor(dec("20"), dec("20"), dec("10000"), dec("2000"))
	inv.ReceiveIncome()
	inv.ReceiveIncome()
	if !inv.Cash.Equal(dec("14000")) {
		t.Errorf("cash = %s, want 14000", inv.Cash)
	}
}

func TestNetWorth(t *testing.T) {
	inv := NewInvestor(dec("20"), dec("20"), dec("1000"), dec("0"))
	inv.Shares = dec("2.5")
	if got := inv.NetWorth(dec("100")); !got.Equal(dec("1250")) {
		t.Errorf("net worth = %s, want 1250", got)
	}
}

func TestReactBuy(t *testing.T) {
	inv := NewInvestor(dec("21"), dec("21"), dec("10000"), dec("2000"))
	action, err := inv.React(dec("20.04"), dec("1204.42"))
	if err != nil {
		t.Fatal(err)
	}
	if action != Buy {
		t.Fatalf("action = %s, want buy", action)
	}
	if !inv.Cash.IsZero() {
		t.Errorf("cash = %s, want exactly 0 after a buy", inv.Cash)
	}
	if !closeTo(inv.Shares.Mul(dec("1204.42")), dec("10000")) {
		t.Errorf("position worth = %s, want ~10000", inv.Shares.Mul(dec("1204.42")))
	}
}

func TestReactSell(t *testing.T) {
	inv := NewInvestor(dec("20"), dec("20"), dec("0"), dec("0"))
	inv.Shares = dec("10")
	action, err := inv.React(dec("22.6"), dec("1286.94"))
	if err != nil {
		t.Fatal(err)
	}
	if action != Sell {
		t.Fatalf("action = %s, want sell", action)
	}
	if !inv.Shares.IsZero() {
		t.Errorf("shares = %s, want exactly 0 after a sell", inv.Shares)
	}
	if !inv.Cash.Equal(dec("12869.4")) {
		t.Errorf("cash = %s, want 12869.4", inv.Cash)
	}
}

func TestReactHold(t *testing.T) {
	// ratio above buy, at-or-below sell: nothing to do either way
	inv := NewInvestor(dec("19"), dec("25"), dec("10000"), dec("0"))
	inv.Shares = dec("1")
	action, err := inv.React(dec("22"), dec("1000"))
	if err != nil {
		t.Fatal(err)
	}
	if action != Hold {
		t.Errorf("action = %s, want hold", action)
	}
	if !inv.Cash.Equal(dec("10000")) || !inv.Shares.Equal(dec("1")) {
		t.Errorf("hold mutated state: cash=%s shares=%s", inv.Cash, inv.Shares)
	}
}

func TestReactSellTrigger(t *testing.T) {
	// The strict trigger ignores a ratio equal to the threshold; the
	// inclusive variant sells on it.
	for _, inclusive := range []bool{false, true} {
		inv := NewInvestor(dec("15"), dec("20"), dec("0"), dec("0"))
		inv.Shares = dec("1")
		inv.Policy.SellTriggerInclusive = inclusive
		action, err := inv.React(dec("20"), dec("1000"))
		if err != nil {
			t.Fatal(err)
		}
		want := Hold
		if inclusive {
			want = Sell
		}
		if action != want {
			t.Errorf("inclusive=%v: action = %s, want %s", inclusive, action, want)
		}
	}
}

func TestReactSellBeforeBuy(t *testing.T) {
	// With inverted thresholds a ratio can satisfy both rules; the sell check
	// wins and no buy happens in the same period.
	inv := NewInvestor(dec("30"), dec("20"), dec("500"), dec("0"))
	inv.Shares = dec("1")
	action, err := inv.React(dec("25"), dec("1000"))
	if err != nil {
		t.Fatal(err)
	}
	if action != Sell {
		t.Fatalf("action = %s, want sell", action)
	}
	if !inv.Shares.IsZero() {
		t.Errorf("shares = %s, want 0", inv.Shares)
	}
	if !inv.Cash.Equal(dec("1500")) {
		t.Errorf("cash = %s, want 1500", inv.Cash)
	}
}

func TestAcquireAllInvalidPrice(t *testing.T) {
	for _, price := range []string{"0", "-1"} {
		inv := NewInvestor(dec("20"), dec("20"), dec("1000"), dec("0"))
		if err := inv.AcquireAll(dec(price)); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("AcquireAll(%s) error = %v, want ErrInvalidPrice", price, err)
		}
	}
}

func TestLiquidateAcquirePreservesWorth(t *testing.T) {
	// With no fees, a round trip at the same price keeps net worth, modulo
	// the division's precision.
	price := dec("1286.94")
	inv := NewInvestor(dec("20"), dec("20"), dec("0"), dec("0"))
	inv.Shares = dec("9.32443")

	before := inv.NetWorth(price)
	inv.Liquidate(price)
	if !inv.Shares.IsZero() {
		t.Fatalf("shares = %s, want 0 after liquidate", inv.Shares)
	}
	if err := inv.AcquireAll(price); err != nil {
		t.Fatal(err)
	}
	if !inv.Cash.IsZero() {
		t.Fatalf("cash = %s, want 0 after acquire", inv.Cash)
	}
	if after := inv.NetWorth(price); !closeTo(before, after) {
		t.Errorf("net worth %s -> %s across a round trip", before, after)
	}
}
