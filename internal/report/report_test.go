package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
	"github.com/theirongolddev/mbudget/internal/pipeline"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

func examplePlan() model.Plan {
	return pipeline.Compute(model.Inputs{
		Brand:           "Sparkle",
		CurrentYear:     2026,
		CurrentSOM:      10,
		NextSOM:         12,
		LeaderName:      "MegaCola",
		LeaderSOM:       15,
		CompGRP:         1000,
		CompGRPIncrease: 10,
		CPRP:            500,
		TVFactor:        1.2,
	}, config.DefaultRatioTable)
}

func exampleDoc() Document {
	return Build(examplePlan(), Options{Organization: "Acme Media", Now: fixedNow})
}

func findRow(t *testing.T, doc Document, section, label string) string {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Title != section {
			continue
		}
		for _, r := range s.Rows {
			if r.Label == label {
				return r.Value
			}
		}
		t.Fatalf("section %q has no row %q", section, label)
	}
	t.Fatalf("no section %q", section)
	return ""
}

func TestBuildSections(t *testing.T) {
	doc := exampleDoc()

	wantTitles := []string{
		"Basic Information",
		"Market Structure",
		"Share of Voice (SOV)",
		"GRP Analysis",
		"Financial Impact",
	}
	if len(doc.Sections) != len(wantTitles) {
		t.Fatalf("len(Sections) = %d, want %d", len(doc.Sections), len(wantTitles))
	}
	for i, want := range wantTitles {
		if doc.Sections[i].Title != want {
			t.Errorf("Sections[%d].Title = %q, want %q", i, doc.Sections[i].Title, want)
		}
	}

	tests := []struct {
		section, label, want string
	}{
		{"Basic Information", "Current Year", "2026"},
		{"Basic Information", "Current SOM (%)", "10.00"},
		{"Basic Information", "2027 SOM (%)", "12.00"},
		{"Basic Information", "SOM Growth", "2.00%"},
		{"Market Structure", "Category Leader", "MegaCola"},
		{"Market Structure", "Leader SOM (%)", "15.00"},
		{"Market Structure", "Market Type", "Large"},
		{"Market Structure", "Applied SOV/SOM Ratio", "1.20"},
		{"Share of Voice (SOV)", "Target SOM 2027 (%)", "12.00"},
		{"Share of Voice (SOV)", "Required SOV 2027 (%)", "14.40"},
		{"GRP Analysis", "Sparkle GRP 2027", "185.05"},
		{"GRP Analysis", "Competitor GRP 2027", "1100"},
		{"GRP Analysis", "Total Market GRP (100%)", "1285"},
		{"Financial Impact", "CPRP (TV)", "500"},
		{"Financial Impact", "TV to All Media Factor", "1.2"},
		{"Financial Impact", "TV Budget 2027", "92,523"},
		{"Financial Impact", "Total Media Budget 2027", "111,028"},
	}
	for _, tt := range tests {
		if got := findRow(t, doc, tt.section, tt.label); got != tt.want {
			t.Errorf("%s / %s = %q, want %q", tt.section, tt.label, got, tt.want)
		}
	}

	if doc.Headline != "Total Projected Budget (All Media): 111,028" {
		t.Errorf("Headline = %q", doc.Headline)
	}
	if doc.BrandLine != "Brand: Sparkle" {
		t.Errorf("BrandLine = %q", doc.BrandLine)
	}
	if doc.Copyright() != "© 2026 Acme Media." {
		t.Errorf("Copyright() = %q", doc.Copyright())
	}
	if doc.ID == "" {
		t.Error("ID is empty")
	}
	if doc.Chart != nil {
		t.Error("Chart set without IncludeChart")
	}
}

func TestBuildBlankNames(t *testing.T) {
	p := examplePlan()
	p.Inputs.Brand = "  "
	p.Inputs.LeaderName = ""

	doc := Build(p, Options{Now: fixedNow, IncludeChart: true})

	if doc.BrandLine != "Brand: Not specified" {
		t.Errorf("BrandLine = %q, want %q", doc.BrandLine, "Brand: Not specified")
	}
	if got := findRow(t, doc, "Market Structure", "Category Leader"); got != "Not specified" {
		t.Errorf("Category Leader = %q, want Not specified", got)
	}
	findRow(t, doc, "GRP Analysis", "Brand GRP 2027")
	if doc.Organization != config.DefaultOrganization {
		t.Errorf("Organization = %q, want %q", doc.Organization, config.DefaultOrganization)
	}
	if doc.Chart == nil || doc.Chart.BrandLabel != "Brand" || doc.Chart.Year != 2027 {
		t.Errorf("Chart = %+v", doc.Chart)
	}
	if doc.Brand != "" {
		t.Errorf("Brand = %q, want empty", doc.Brand)
	}
}

func TestBuildUniqueIDs(t *testing.T) {
	a, b := exampleDoc(), exampleDoc()
	if a.ID == b.ID {
		t.Fatalf("two documents share ID %s", a.ID)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		brand string
		f     Format
		want  string
	}{
		{"Sparkle", FormatPDF, "Budget_Plan_Sparkle.pdf"},
		{"", FormatPDF, "Budget_Plan_Report.pdf"},
		{"   ", FormatXLSX, "Budget_Plan_Report.xlsx"},
		{"Acme/Fizz", FormatMarkdown, "Budget_Plan_Acme_Fizz.md"},
		{`a\b`, FormatHTML, "Budget_Plan_a_b.html"},
	}
	for _, tt := range tests {
		if got := Filename(tt.brand, tt.f); got != tt.want {
			t.Errorf("Filename(%q, %s) = %q, want %q", tt.brand, tt.f, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatPDF,
		"PDF":      FormatPDF,
		"excel":    FormatXLSX,
		"xlsx":     FormatXLSX,
		"markdown": FormatMarkdown,
		" md ":     FormatMarkdown,
		"htm":      FormatHTML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseFormat("docx"); err == nil {
		t.Fatal("ParseFormat(docx) succeeded")
	}
}

func TestContentType(t *testing.T) {
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf ContentType = %q", got)
	}
	if got := FormatHTML.ContentType(); !strings.HasPrefix(got, "text/html") {
		t.Errorf("html ContentType = %q", got)
	}
}

func TestBuildOverflowRendersEveryFormat(t *testing.T) {
	in := examplePlan().Inputs
	in.CompGRP = 1e308
	in.CompGRPIncrease = 100
	in.CPRP = 0
	p := pipeline.Compute(in, config.DefaultRatioTable)
	if p.Finite() {
		t.Fatal("expected an overflowed plan")
	}

	doc := Build(p, Options{Organization: "Acme Media", IncludeChart: true, Now: fixedNow})
	if got := findRow(t, doc, "GRP Analysis", "Competitor GRP 2027"); got != "Infinity" {
		t.Fatalf("Competitor GRP = %q, want Infinity", got)
	}
	// Inf * 0 is NaN.
	if got := findRow(t, doc, "Financial Impact", "TV Budget 2027"); got != "NaN" {
		t.Fatalf("TV Budget = %q, want NaN", got)
	}

	for _, f := range Formats {
		var buf bytes.Buffer
		if err := Render(&buf, doc, f); err != nil {
			t.Errorf("Render(%s): %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Render(%s) wrote nothing", f)
		}
	}
}
