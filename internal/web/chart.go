package web

import (
	"fmt"
	"html"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/henri123lemoine/aligns/internal/view"
)

const (
	chartHeight     = 480
	chartBarWidth   = 60
	chartBarSpacing = 40
	chartMargin     = 160
)

var chartBarColor = drawing.ColorFromHex("007acc")

// renderChart writes c as an SVG bar chart, one bar per point in order.
// A chart with no points renders a placeholder instead of failing.
func renderChart(w io.Writer, title string, c *view.Chart) error {
	if len(c.Points) == 0 {
		return renderEmptyChart(w, title)
	}

	top := 0.0
	bars := make([]chart.Value, 0, len(c.Points))
	for _, pt := range c.Points {
		top = max(top, pt.Value)
		bars = append(bars, chart.Value{
			Label: html.EscapeString(pt.Label),
			Value: pt.Value,
			Style: chart.Style{FillColor: chartBarColor, StrokeColor: chartBarColor},
		})
	}
	if top <= 0 {
		top = 1
	}

	// go-chart writes text into the SVG unescaped.
	bc := chart.BarChart{
		Title:      html.EscapeString(title),
		Height:     chartHeight,
		Width:      chartMargin + len(bars)*(chartBarWidth+chartBarSpacing),
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Name:           html.EscapeString(c.YAxis),
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: scoreFormatter,
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func scoreFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return view.FormatScore(f)
	}
	return fmt.Sprint(v)
}

func renderEmptyChart(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="480" height="120">`+
			`<text x="240" y="40" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
			`<text x="240" y="80" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#777">No data to chart.</text>`+
			`</svg>`,
		html.EscapeString(title))
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
