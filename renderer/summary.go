package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/wgaggioli/capeval"
)

// summaryRow is one investor's final state, formatted.
type summaryRow struct {
	Name   string
	Shares string
	Cash   string
	Worth  string
}

// summaryData is the payload of the summary template.
type summaryData struct {
	Symbol  string
	Periods int
	From    string
	To      string
	Rows    []summaryRow
}

const summaryTemplate = `# Backtest of {{.Symbol}}

{{.Periods}} periods from {{.From}} to {{.To}}.

| Investor | Shares | Cash | Net worth |
| --- | ---: | ---: | ---: |
{{range .Rows}}| {{.Name}} | {{.Shares}} | {{.Cash}} | {{.Worth}} |
{{end}}`

// SummaryMarkdown renders the final state of every investor as a markdown
// table. Investors are named after their thresholds.
func SummaryMarkdown(symbol string, investors []*capeval.Investor, res *capeval.Result) string {
	last := len(res.Dates) - 1
	data := summaryData{
		Symbol:  symbol,
		Periods: len(res.Dates),
	}
	if last >= 0 {
		data.From = res.Dates[0].String()
		data.To = res.Dates[last].String()
	}
	for j, inv := range investors {
		row := summaryRow{Name: InvestorName(inv)}
		if last >= 0 {
			row.Shares = res.Shares[j][last].Round(4).String()
			row.Cash = usd(res.Cash[j][last])
			row.Worth = usd(res.Worth[j][last])
		}
		data.Rows = append(data.Rows, row)
	}
	return renderTemplate("summary", summaryTemplate, data)
}

// InvestorName labels an investor by its thresholds, e.g. "buy<=21" or
// "buy<=20 sell>25" when they differ.
func InvestorName(inv *capeval.Investor) string {
	name := "buy<=" + inv.BuyAt.String()
	if !inv.SellAt.Equal(inv.BuyAt) {
		op := ">"
		if inv.Policy.SellTriggerInclusive {
			op = ">="
		}
		name += " sell" + op + inv.SellAt.String()
	}
	return name
}

// renderTemplate parses and executes a template over data.
func renderTemplate(name, text string, data any) string {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
