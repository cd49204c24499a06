package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX(t *testing.T) {
	doc := exampleDoc()

	var buf bytes.Buffer
	if err := RenderXLSX(&buf, doc); err != nil {
		t.Fatalf("RenderXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != sheetName {
		t.Fatalf("sheet = %q, want %q", got, sheetName)
	}

	title, _ := f.GetCellValue(sheetName, "A1")
	if title != Title {
		t.Errorf("A1 = %q, want %q", title, Title)
	}
	headline, _ := f.GetCellValue(sheetName, "A3")
	if headline != doc.Headline {
		t.Errorf("A3 = %q, want %q", headline, doc.Headline)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	found := false
	for _, r := range rows {
		if len(r) == 2 && r[0] == "Total Media Budget 2027" {
			found = true
			if r[1] != "111,028" {
				t.Errorf("Total Media Budget = %q, want 111,028", r[1])
			}
		}
	}
	if !found {
		t.Error("no Total Media Budget row")
	}

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatalf("GetDocProps: %v", err)
	}
	if props.Identifier != doc.ID {
		t.Errorf("Identifier = %q, want %q", props.Identifier, doc.ID)
	}
}
