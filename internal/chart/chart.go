// Package chart renders assessment history as a standalone HTML page.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/relcheck/relcheck/internal/stats"
)

// Render writes an HTML page with the score timeline and per-category
// favorable rates of sum.
func Render(w io.Writer, sum stats.Summary) error {
	page := components.NewPage()
	page.SetPageTitle("Relationship check-ins")
	page.AddCharts(Timeline(sum), Categories(sum))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}
	return nil
}

// Timeline charts the recent scores oldest-first with the tier thresholds
// marked.
func Timeline(sum stats.Summary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Score Over Time",
			Subtitle: fmt.Sprintf("last %d check-ins, trend %s", len(sum.Recent), sum.Trend),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "%",
			Min:  0,
			Max:  100,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	records := sum.Chronological()
	dates := make([]string, 0, len(records))
	items := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		items = append(items, opts.LineData{Value: r.Percentage})
	}

	line.SetXAxis(dates).AddSeries("Score", items,
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "healthy", YAxis: 80},
			opts.MarkLineNameYAxisItem{Name: "work needed", YAxis: 60},
			opts.MarkLineNameYAxisItem{Name: "serious concerns", YAxis: 40},
		),
	)
	return line
}

// Categories charts the favorable-answer rate of every category that has
// at least one observed answer, in display order.
func Categories(sum stats.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Healthy Answers by Category",
			Subtitle: "share of favorable answers across recent check-ins",
		}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "%", Min: 0, Max: 100}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(sum.Categories))
	items := make([]opts.BarData, 0, len(sum.Categories))
	for _, c := range sum.Categories {
		if c.Observed == 0 {
			continue
		}
		names = append(names, c.Category.Label())
		items = append(items, opts.BarData{Value: percent(c.Mean)})
	}

	bar.SetXAxis(names).AddSeries("Favorable", items)
	return bar
}

func percent(f float64) int {
	return int(f*100 + 0.5)
}
