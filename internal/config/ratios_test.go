package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/mbudget/internal/model"
)

func TestDefaultRatioTableLookup(t *testing.T) {
	cases := []struct {
		growth    float64
		mt        model.MarketType
		wantRatio float64
		wantBand  int
	}{
		{2, model.MarketLarge, 1.2, 0},
		{1.0, model.MarketContender, 1.65, 0},
		{0.75, model.MarketLarge, 1.15, 1},
		{0.99, model.MarketContender, 1.5, 1},
		{0, model.MarketLarge, 1.1, 2},
		{0.49, model.MarketContender, 1.35, 2},
		{-0.01, model.MarketLarge, 1.05, 3},
		{-0.5, model.MarketContender, 1.25, 3},
		{-0.51, model.MarketLarge, 0.8, 4},
		{-40, model.MarketContender, 0.9, 4},
	}

	for _, tc := range cases {
		ratio, band := DefaultRatioTable.Lookup(tc.growth, tc.mt)
		if ratio != tc.wantRatio || band != tc.wantBand {
			t.Errorf("Lookup(%.2f, %s) = (%.2f, %d), want (%.2f, %d)",
				tc.growth, tc.mt, ratio, band, tc.wantRatio, tc.wantBand)
		}
	}
}

func TestDefaultRatioTableGapsFallBackToZero(t *testing.T) {
	for _, growth := range []float64{0.995, 0.495, -0.005, -0.505} {
		ratio, band := DefaultRatioTable.Lookup(growth, model.MarketLarge)
		if ratio != 0 || band != -1 {
			t.Errorf("Lookup(%.3f) = (%.2f, %d), want (0, -1)", growth, ratio, band)
		}
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	table := RatioTable{Bands: []Band{
		{Min: bound(0), Large: 1, Contender: 1},
		{Min: bound(0), Max: bound(5), Large: 2, Contender: 2},
	}}

	ratio, band := table.Lookup(3, model.MarketLarge)
	if ratio != 1 || band != 0 {
		t.Fatalf("Lookup(3) = (%.2f, %d), want (1, 0)", ratio, band)
	}
}

func TestBandWithoutBoundsNeverMatches(t *testing.T) {
	b := Band{Large: 9, Contender: 9}
	for _, g := range []float64{-100, 0, 100} {
		if b.Contains(g) {
			t.Fatalf("unbounded band matched growth %.0f", g)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultRatioTable.Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
	if err := (RatioTable{}).Validate(); err == nil {
		t.Fatal("empty table passed validation")
	}
	bad := RatioTable{Bands: []Band{{Large: 1, Contender: 1}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("band without bounds passed validation")
	}
	inverted := RatioTable{Bands: []Band{{Min: bound(2), Max: bound(1)}}}
	if err := inverted.Validate(); err == nil {
		t.Fatal("inverted band passed validation")
	}
}

func TestLoadRatioTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mature.yaml")
	src := `name: Mature Markets
bands:
  - min: 0.5
    large: 1.1
    contender: 1.3
  - max: 0.49
    large: 0.9
    contender: 1.0
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadRatioTable(path)
	if err != nil {
		t.Fatalf("LoadRatioTable: %v", err)
	}
	if table.Name != "Mature Markets" {
		t.Fatalf("Name = %q, want Mature Markets", table.Name)
	}
	if len(table.Bands) != 2 {
		t.Fatalf("len(Bands) = %d, want 2", len(table.Bands))
	}
	if table.Bands[0].Max != nil {
		t.Fatal("open max bound decoded as non-nil")
	}

	ratio, band := table.Lookup(0.2, model.MarketContender)
	if ratio != 1.0 || band != 1 {
		t.Fatalf("Lookup(0.2) = (%.2f, %d), want (1.0, 1)", ratio, band)
	}
}

func TestLoadRatioTableRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRatioTable(path); err == nil {
		t.Fatal("expected error for table without bands")
	}
}

func TestActiveRatioTableDefault(t *testing.T) {
	table, err := ActiveRatioTable(DefaultConfig(), "")
	if err != nil {
		t.Fatalf("ActiveRatioTable: %v", err)
	}
	if table.Name != DefaultRatioTable.Name {
		t.Fatalf("Name = %q, want %q", table.Name, DefaultRatioTable.Name)
	}
}
