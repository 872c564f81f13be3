package capeval

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

func TestResolveCachedDateSkipsQuoter(t *testing.T) {
	day := date.MustParse("2011-09-01")
	cache := NewPriceCache("^GSPC")
	cache.Put(day, dec("1286.94"))
	q := &staticQuoter{}
	o := NewOracle("^GSPC", q, cache)

	price, err := o.Resolve(day)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1286.94")) {
		t.Errorf("price = %s, want 1286.94", price)
	}
	if q.calls != 0 {
		t.Errorf("quoter called %d times for a cached date, want 0", q.calls)
	}
}

func TestResolveNormalizesWeekends(t *testing.T) {
	friday := date.MustParse("2011-09-30")
	saturday := date.MustParse("2011-10-01")
	q := &staticQuoter{closes: map[date.Date]decimal.Decimal{friday: dec("1131.42")}}
	cache := NewPriceCache("^GSPC")
	o := NewOracle("^GSPC", q, cache)

	price, err := o.Resolve(saturday)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1131.42")) {
		t.Errorf("price = %s, want 1131.42", price)
	}
	if q.calls != 1 {
		t.Errorf("quoter called %d times, want 1 (saturday normalized before lookup)", q.calls)
	}
	// the cache is keyed by the normalized date
	if _, ok := cache.Get(friday); !ok {
		t.Error("friday missing from cache")
	}
	if _, ok := cache.Get(saturday); ok {
		t.Error("saturday cached, want only the normalized date")
	}
}

func TestResolveWithoutNormalization(t *testing.T) {
	// The historical variant finds the friday too, but by burning a retry on
	// the saturday first.
	friday := date.MustParse("2011-09-30")
	saturday := date.MustParse("2011-10-01")
	q := &staticQuoter{closes: map[date.Date]decimal.Decimal{friday: dec("1131.42")}}
	o := NewOracle("^GSPC", q, NewPriceCache("^GSPC"))
	o.NormalizeWeekends = false

	price, err := o.Resolve(saturday)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1131.42")) {
		t.Errorf("price = %s, want 1131.42", price)
	}
	if q.calls != 2 {
		t.Errorf("quoter called %d times, want 2", q.calls)
	}
}

func TestResolveRetriesBackward(t *testing.T) {
	// D and D-1 are holidays, D-2 trades: the default budget of 2 reaches it.
	d := date.MustParse("2011-11-02")
	q := &staticQuoter{closes: map[date.Date]decimal.Decimal{d.Add(-2): dec("1218.28")}}
	cache := NewPriceCache("^GSPC")
	o := NewOracle("^GSPC", q, cache)

	price, err := o.Resolve(d)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1218.28")) {
		t.Errorf("price = %s, want 1218.28", price)
	}
	if q.calls != 3 {
		t.Errorf("quoter called %d times, want 3", q.calls)
	}
	// cached under the date that ultimately served
	if _, ok := cache.Get(d.Add(-2)); !ok {
		t.Error("serving date missing from cache")
	}
	if _, ok := cache.Get(d); ok {
		t.Error("requested date cached, want only the serving date")
	}
}

func TestResolveRetrySkipsWeekends(t *testing.T) {
	// A monday holiday: the two retries land on friday and thursday, never on
	// the weekend.
	monday := date.MustParse("2011-10-10")
	friday := date.MustParse("2011-10-07")
	q := &staticQuoter{closes: map[date.Date]decimal.Decimal{friday: dec("1155.46")}}
	o := NewOracle("^GSPC", q, NewPriceCache("^GSPC"))

	price, err := o.Resolve(monday)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1155.46")) {
		t.Errorf("price = %s, want 1155.46", price)
	}
	if q.calls != 2 {
		t.Errorf("quoter called %d times, want 2 (weekend days skipped)", q.calls)
	}
}

func TestResolveExhaustsBudget(t *testing.T) {
	d := date.MustParse("2011-11-02")
	q := &staticQuoter{} // every day fails
	o := NewOracle("^GSPC", q, NewPriceCache("^GSPC"))

	_, err := o.Resolve(d)
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Fatalf("error = %v, want ErrPriceUnavailable", err)
	}
	// the error names the date the caller asked about
	if !strings.Contains(err.Error(), "2011-11-02") {
		t.Errorf("error %q does not name the requested date", err)
	}
	if q.calls != 3 {
		t.Errorf("quoter called %d times, want 3 (initial + 2 retries)", q.calls)
	}
}

func TestResolveRetryHitsCache(t *testing.T) {
	// A walked-back day already in the cache is served without a quoter call.
	d := date.MustParse("2011-11-02")
	cache := NewPriceCache("^GSPC")
	cache.Put(d.Add(-1), dec("1237.9"))
	q := &staticQuoter{}
	o := NewOracle("^GSPC", q, cache)

	price, err := o.Resolve(d)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(dec("1237.9")) {
		t.Errorf("price = %s, want 1237.9", price)
	}
	if q.calls != 1 {
		t.Errorf("quoter called %d times, want 1", q.calls)
	}
}
