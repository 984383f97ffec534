package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

var (
	directColor   = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	foregoneColor = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
)

// ChartSize is the rendered image size in inches.
type ChartSize struct {
	WidthIn  float64
	HeightIn float64
}

// DefaultChartSize matches a 10x6 inch figure.
var DefaultChartSize = ChartSize{WidthIn: 10, HeightIn: 6}

// NewChart builds a stacked bar chart of direct costs and foregone tax, in
// millions of dollars, with the total labelled above each bar.
func NewChart(results []vsl.Result, scenario string, size ChartSize) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, errors.New("no neighborhoods to chart")
	}

	direct := make(plotter.Values, len(results))
	foregone := make(plotter.Values, len(results))
	names := make([]string, len(results))
	totals := make(plotter.XYs, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		d := r.DirectCostTotal / 1_000_000
		f := r.ForegoneTaxPV / 1_000_000
		direct[i] = d
		foregone[i] = f
		names[i] = r.Name
		totals[i] = plotter.XY{X: float64(i), Y: d + f}
		labels[i] = fmt.Sprintf("$%.2fM", d+f)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Vacancy Shadow Liability by Neighborhood (%s Scenario)", titleCase(scenario))
	p.X.Label.Text = "Neighborhood"
	p.Y.Label.Text = "VSL (Millions USD)"
	p.Y.Min = 0

	barWidth := vg.Length(size.WidthIn) * vg.Inch * 0.6 / vg.Length(len(results))
	directBars, err := plotter.NewBarChart(direct, barWidth)
	if err != nil {
		return nil, fmt.Errorf("direct cost bars: %w", err)
	}
	directBars.Color = directColor
	directBars.LineStyle.Width = 0

	foregoneBars, err := plotter.NewBarChart(foregone, barWidth)
	if err != nil {
		return nil, fmt.Errorf("foregone tax bars: %w", err)
	}
	foregoneBars.Color = foregoneColor
	foregoneBars.LineStyle.Width = 0
	foregoneBars.StackOn(directBars)

	totalLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: totals, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("total labels: %w", err)
	}
	for i := range totalLabels.TextStyle {
		totalLabels.TextStyle[i].XAlign = text.XCenter
		totalLabels.TextStyle[i].YAlign = text.YBottom
	}

	p.Add(directBars, foregoneBars, totalLabels)
	p.Legend.Add("Direct Public Costs", directBars)
	p.Legend.Add("Foregone Tax (PV)", foregoneBars)
	p.Legend.Top = true

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return p, nil
}

// RenderChart writes the chart to w as a PNG image.
func RenderChart(w io.Writer, results []vsl.Result, scenario string, size ChartSize) error {
	p, err := NewChart(results, scenario, size)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(size.WidthIn)*vg.Inch, vg.Length(size.HeightIn)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
