package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	brandColor      = color.RGBA{R: 66, G: 153, B: 225, A: 255}
	competitorColor = color.RGBA{R: 160, G: 174, B: 192, A: 255}
)

// ChartPNG draws the next-year brand vs competitor GRP bars.
// It returns nil when there is nothing meaningful to draw.
func ChartPNG(c Chart) ([]byte, error) {
	if !finite(c.BrandGRP) || !finite(c.CompetitorGRP) ||
		c.BrandGRP < 0 || c.CompetitorGRP < 0 || c.BrandGRP+c.CompetitorGRP == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("GRP %d", c.Year)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "GRP"
	p.Y.Min = 0

	brand, err := plotter.NewBarChart(plotter.Values{c.BrandGRP}, vg.Points(60))
	if err != nil {
		return nil, fmt.Errorf("brand bar: %w", err)
	}
	brand.Color = brandColor
	brand.LineStyle.Width = vg.Length(0)
	brand.Offset = -vg.Points(32)

	comp, err := plotter.NewBarChart(plotter.Values{c.CompetitorGRP}, vg.Points(60))
	if err != nil {
		return nil, fmt.Errorf("competitor bar: %w", err)
	}
	comp.Color = competitorColor
	comp.LineStyle.Width = vg.Length(0)
	comp.Offset = vg.Points(32)

	p.Add(brand, comp, plotter.NewGrid())
	p.Legend.Add(c.BrandLabel, brand)
	p.Legend.Add("Competitors", comp)
	p.Legend.Top = true
	p.NominalX(fmt.Sprintf("%d", c.Year))

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	return buf.Bytes(), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
