package capeval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval/date"
)

// ValuationPoint is one entry of the valuation-ratio series: the ratio
// published for a month, tagged with the evaluation date it applies to.
type ValuationPoint struct {
	On    date.Date
	Ratio decimal.Decimal
}

// ResolveEvaluationDate maps a "MM/YYYY" label to the date the month's ratio
// is evaluated on. The ratio is an average over the whole month, so evaluation
// happens once the month is over: start at day 28 and advance while the date
// is still in the labeled month or falls on a weekend. The result is the first
// weekday after the month ends.
func ResolveEvaluationDate(label string) (date.Date, error) {
	d0, err := date.ParseMonth(label)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	d := d0.Add(27)
	for d.Month() == d0.Month() || isWeekend(d) {
		d = d.Add(1)
	}
	return d, nil
}

func isWeekend(d date.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseValuationSeries reads "MM/YYYY,ratio" records, one per line, and
// returns the points whose evaluation date falls within the window, in
// chronological order. Blank lines are skipped; anything else that does not
// parse aborts the load. filename is for error messages only.
func ParseValuationSeries(r io.Reader, filename string, window date.Range) ([]ValuationPoint, error) {
	var points []ValuationPoint
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		label, field, ok := strings.Cut(line, ",")
		if !ok || strings.Contains(field, ",") {
			return nil, fmt.Errorf("%s:%d: %w: want \"MM/YYYY,ratio\" got %q", filename, n, ErrMalformedRecord, line)
		}
		ratio, err := decimal.NewFromString(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w: ratio %q is not a number", filename, n, ErrMalformedRecord, field)
		}
		on, err := ResolveEvaluationDate(strings.TrimSpace(label))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
		}
		if window.Contains(on) {
			points = append(points, ValuationPoint{On: on, Ratio: ratio})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].On.Before(points[j].On) })
	return points, nil
}

// LoadValuationSeries reads a valuation-ratio file from disk.
func LoadValuationSeries(path string, window date.Range) ([]ValuationPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ratio file: %w", err)
	}
	defer f.Close()
	return ParseValuationSeries(f, path, window)
}
