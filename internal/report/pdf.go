package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres on A4 portrait.
const (
	margin         = 20.0
	bottomReserve  = 20.0
	sectionNeeded  = 50.0
	chartNeeded    = 115.0
	newPageTop     = 40.0
	rowHeight      = 8.0
	valueColOffset = 60.0
	chartImageName = "grp-split"
)

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	doc   Document
	pageW float64
	pageH float64
	y     float64
}

// RenderPDF writes doc as a paginated PDF.
func RenderPDF(w io.Writer, doc Document) error {
	pdf, err := buildPDF(doc)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func buildPDF(doc Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	pw := &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		doc: doc,
	}
	pw.pageW, pw.pageH = pdf.GetPageSize()

	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Organization, true)
	pdf.SetCreator("mbudget", true)
	pdf.SetSubject("Media budget plan "+doc.ID, true)
	pdf.SetKeywords(doc.ID, true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
		pdf.SetModificationDate(doc.GeneratedAt)
	}

	pdf.SetHeaderFunc(pw.header)
	pdf.SetFooterFunc(pw.footer)

	pdf.AddPage()
	pw.title()
	for _, s := range doc.Sections {
		pw.section(s)
	}
	if doc.Chart != nil {
		if err := pw.chart(*doc.Chart); err != nil {
			return nil, err
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

func (pw *pdfWriter) header() {
	p := pw.pdf
	p.SetFont("Helvetica", "", 10)
	p.SetTextColor(150, 150, 150)
	org := pw.tr(pw.doc.Organization)
	p.Text(pw.pageW-margin-p.GetStringWidth(org), 15, org)
	p.SetDrawColor(226, 232, 240)
	p.Line(margin, 20, pw.pageW-margin, 20)
}

func (pw *pdfWriter) footer() {
	p := pw.pdf
	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(160, 174, 192)
	// {nb} is replaced with the page count when the document closes.
	line := pw.tr(fmt.Sprintf("%s Page %d of {nb}", pw.doc.Copyright(), p.PageNo()))
	p.Text(pw.pageW/2-p.GetStringWidth(line)/2, pw.pageH-10, line)
}

func (pw *pdfWriter) title() {
	p := pw.pdf

	pw.y = 35
	p.SetFont("Helvetica", "", 20)
	p.SetTextColor(45, 55, 72)
	p.Text(margin, pw.y, pw.tr(pw.doc.Title))

	pw.y += 10
	p.SetFontSize(12)
	p.SetTextColor(100, 100, 100)
	p.Text(margin, pw.y, pw.tr(pw.doc.BrandLine))

	pw.y += 15
	p.SetFontSize(14)
	p.SetTextColor(66, 153, 225)
	p.Text(margin, pw.y, pw.tr(pw.doc.Headline))
}

// ensureSpace starts a new page when needed millimetres would run into
// the footer zone.
func (pw *pdfWriter) ensureSpace(needed float64) {
	if pw.y+needed > pw.pageH-bottomReserve {
		pw.pdf.AddPage()
		pw.y = newPageTop
	}
}

func (pw *pdfWriter) sectionTitle(title string) {
	p := pw.pdf
	pw.y += 15
	p.SetFont("Helvetica", "B", 12)
	p.SetTextColor(45, 55, 72)
	p.Text(margin, pw.y, pw.tr(title))
	pw.y += 5
	p.SetDrawColor(226, 232, 240)
	p.Line(margin, pw.y, pw.pageW-margin, pw.y)
	pw.y += 10
	p.SetFont("Helvetica", "", 12)
}

func (pw *pdfWriter) section(s Section) {
	pw.ensureSpace(sectionNeeded)
	pw.sectionTitle(s.Title)
	for _, r := range s.Rows {
		pw.pdf.Text(margin, pw.y, pw.tr(r.Label))
		pw.pdf.Text(pw.pageW-valueColOffset, pw.y, pw.tr(r.Value))
		pw.y += rowHeight
	}
}

func (pw *pdfWriter) chart(c Chart) error {
	png, err := ChartPNG(c)
	if err != nil {
		return err
	}
	if png == nil {
		return nil
	}

	pw.ensureSpace(chartNeeded)
	pw.sectionTitle(fmt.Sprintf("GRP Split %d", c.Year))

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pw.pdf.RegisterImageOptionsReader(chartImageName, opts, bytes.NewReader(png))
	w := pw.pageW - 2*margin
	h := w / 2
	pw.pdf.ImageOptions(chartImageName, margin, pw.y-5, w, h, false, opts, 0, "")
	pw.y += h
	return nil
}
