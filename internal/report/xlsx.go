package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Budget Plan"

// RenderXLSX writes doc as a single-sheet workbook.
func RenderXLSX(w io.Writer, doc Document) error {
	f, err := buildXLSX(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func buildXLSX(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "#2D3748"},
	})
	if err != nil {
		return nil, err
	}
	headlineStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "#4299E1"},
	})
	if err != nil {
		return nil, err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#2D3748"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#A0AEC0", Style: 1}},
	})
	if err != nil {
		return nil, err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}

	set := func(row int, label, value string) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		if value != "" {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		}
	}

	set(1, doc.Title, "")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	set(2, doc.BrandLine, "")
	set(3, doc.Headline, "")
	f.SetCellStyle(sheetName, "A3", "A3", headlineStyle)

	row := 5
	for _, s := range doc.Sections {
		set(row, s.Title, "")
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), sectionStyle)
		row++
		for _, r := range s.Rows {
			set(row, r.Label, r.Value)
			f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), valueStyle)
			row++
		}
		row++
	}
	set(row, doc.Copyright(), "")

	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "B", 20)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      doc.Title,
		Subject:    doc.BrandLine,
		Creator:    doc.Organization,
		Identifier: doc.ID,
	}); err != nil {
		return nil, fmt.Errorf("setting workbook properties: %w", err)
	}

	return f, nil
}
