// Package report turns a computed plan into a paginated budget document
// and renders it as PDF, XLSX, Markdown or HTML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/mbudget/internal/cli"
	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
)

const (
	// NotSpecified stands in for blank brand and leader names.
	NotSpecified = "Not specified"
	// Title is the heading of every report.
	Title = "Budget Planning Report"
)

// Row is one label/value line of a section.
type Row struct {
	Label string
	Value string
}

// Section is a titled block of rows.
type Section struct {
	Title string
	Rows  []Row
}

// Chart holds the next-year GRP split drawn under the sections.
type Chart struct {
	BrandLabel    string
	BrandGRP      float64
	CompetitorGRP float64
	Year          int
}

// Document is a renderer-neutral snapshot of a plan.
type Document struct {
	ID            string
	Title         string
	Organization  string
	CopyrightYear int
	GeneratedAt   time.Time

	Brand     string
	BrandLine string
	Headline  string
	Sections  []Section
	Chart     *Chart
}

// Options controls how a Document is built.
type Options struct {
	Organization string
	IncludeChart bool
	// Now defaults to time.Now; it fixes the copyright year and timestamp.
	Now func() time.Time
}

// Build assembles the report document for p.
func Build(p model.Plan, opts Options) Document {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	at := now()

	in := p.Inputs
	ny := strconv.Itoa(p.NextYear)
	brandLabel := cli.OrDefault(in.Brand, "Brand")

	doc := Document{
		ID:            uuid.NewString(),
		Title:         Title,
		Organization:  opts.Organization,
		CopyrightYear: at.Year(),
		GeneratedAt:   at,
		Brand:         strings.TrimSpace(in.Brand),
		BrandLine:     "Brand: " + cli.OrDefault(in.Brand, NotSpecified),
		Headline:      "Total Projected Budget (All Media): " + cli.FormatMoney(p.TotalBudget),
		Sections: []Section{
			{
				Title: "Basic Information",
				Rows: []Row{
					{"Current Year", strconv.Itoa(in.CurrentYear)},
					{"Current SOM (%)", cli.FormatFixed(in.CurrentSOM, 2)},
					{ny + " SOM (%)", cli.FormatFixed(in.NextSOM, 2)},
					{"SOM Growth", cli.FormatPercent(p.GrowthPct)},
				},
			},
			{
				Title: "Market Structure",
				Rows: []Row{
					{"Category Leader", cli.OrDefault(in.LeaderName, NotSpecified)},
					{"Leader SOM (%)", cli.FormatFixed(in.LeaderSOM, 2)},
					{"Market Type", string(p.MarketType)},
					{"Applied SOV/SOM Ratio", cli.FormatFixed(p.Ratio, 2)},
				},
			},
			{
				Title: "Share of Voice (SOV)",
				Rows: []Row{
					{"Target SOM " + ny + " (%)", cli.FormatFixed(in.NextSOM, 2)},
					{"Required SOV " + ny + " (%)", cli.FormatFixed(p.ExpectedSOV, 2)},
				},
			},
			{
				Title: "GRP Analysis",
				Rows: []Row{
					{brandLabel + " GRP " + ny, cli.FormatFixed(p.NextYearBrandGRP, 2)},
					{"Competitor GRP " + ny, cli.FormatFixed(p.NextCompGRP, 0)},
					{"Total Market GRP (100%)", cli.FormatFixed(p.TotalMarketGRP, 0)},
				},
			},
			{
				Title: "Financial Impact",
				Rows: []Row{
					{"CPRP (TV)", cli.FormatGrouped(in.CPRP, 3)},
					{"TV to All Media Factor", cli.FormatFactor(in.TVFactor)},
					{"TV Budget " + ny, cli.FormatMoney(p.NextYearTVBudget)},
					{"Total Media Budget " + ny, cli.FormatMoney(p.TotalBudget)},
				},
			},
		},
	}
	if doc.Organization == "" {
		doc.Organization = config.DefaultOrganization
	}

	if opts.IncludeChart {
		doc.Chart = &Chart{
			BrandLabel:    brandLabel,
			BrandGRP:      p.NextYearBrandGRP,
			CompetitorGRP: p.NextCompGRP,
			Year:          p.NextYear,
		}
	}

	return doc
}

// Copyright is the footer line shown on every page, minus page numbers.
func (d Document) Copyright() string {
	return fmt.Sprintf("© %d %s.", d.CopyrightYear, d.Organization)
}

// Format is an output document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatXLSX, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want pdf, xlsx, md or html)", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

// Filename returns Budget_Plan_<brand>.<ext>, using "Report" when brand
// is blank. Path separators in brand are replaced.
func Filename(brand string, f Format) string {
	name := cli.OrDefault(brand, "Report")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	return "Budget_Plan_" + name + "." + string(f)
}

// Render writes doc to w in format f.
func Render(w io.Writer, doc Document, f Format) error {
	switch f {
	case FormatPDF:
		return RenderPDF(w, doc)
	case FormatXLSX:
		return RenderXLSX(w, doc)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(doc))
		return err
	case FormatHTML:
		return RenderHTML(w, doc)
	}
	return fmt.Errorf("unknown report format %q", f)
}
