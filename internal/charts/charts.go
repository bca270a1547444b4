// Package charts renders server-side progress charts with go-echarts.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/meltforce/repforge/internal/progression"
	"github.com/meltforce/repforge/internal/storage"
)

// RenderProgress writes an HTML line chart of top-set weight and
// estimated 1RM over time for one exercise.
func RenderProgress(w io.Writer, exercise string, points []storage.HistoryPoint) error {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    exercise,
			Subtitle: fmt.Sprintf("%d sessions", len(points)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Weight (kg)",
			NameLocation: "middle",
			NameGap:      40,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
			},
		}),
	)

	dates := make([]string, len(points))
	topSet := make([]opts.LineData, len(points))
	est1RM := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Date.Format("2006-01-02")
		topSet[i] = opts.LineData{Value: p.BestWeightKg}
		est1RM[i] = opts.LineData{Value: progression.Estimate1RM(p.BestWeightKg, p.BestReps, "")}
	}

	line.SetXAxis(dates)
	line.AddSeries("Top set (kg)", topSet)
	line.AddSeries("Est. 1RM (kg)", est1RM)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line.Render(w)
}
