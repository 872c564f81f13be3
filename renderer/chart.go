package renderer

import (
	"errors"

	"github.com/vicanso/go-charts/v2"
	"github.com/wgaggioli/capeval"
)

// WorthChart renders net worth over time as a PNG, one line per investor.
func WorthChart(symbol string, investors []*capeval.Investor, res *capeval.Result) ([]byte, error) {
	if len(res.Dates) == 0 {
		return nil, errors.New("no periods to chart")
	}

	labels := make([]string, len(res.Dates))
	for i, d := range res.Dates {
		labels[i] = d.String()
	}
	names := make([]string, len(investors))
	values := make([][]float64, len(investors))
	for j, inv := range investors {
		names[j] = InvestorName(inv)
		row := make([]float64, len(res.Dates))
		for i, w := range res.Worth[j] {
			row[i] = w.InexactFloat64()
		}
		values[j] = row
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc("Net worth vs time • "+symbol),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag()}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
