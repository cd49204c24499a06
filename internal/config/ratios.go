package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/mbudget/internal/model"
)

// Band is one row of the SOV/SOM ratio table. A nil bound is open-ended.
type Band struct {
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Large     float64  `yaml:"large" json:"large"`
	Contender float64  `yaml:"contender" json:"contender"`
}

// Contains reports whether growth falls inside the band.
// A band with neither bound never matches.
func (b Band) Contains(growth float64) bool {
	switch {
	case b.Min != nil && b.Max != nil:
		return growth >= *b.Min && growth <= *b.Max
	case b.Min != nil:
		return growth >= *b.Min
	case b.Max != nil:
		return growth <= *b.Max
	}
	return false
}

// RatioFor returns the band's ratio for the given market type.
func (b Band) RatioFor(mt model.MarketType) float64 {
	if mt == model.MarketLarge {
		return b.Large
	}
	return b.Contender
}

// RatioTable is an ordered list of bands. Order decides precedence.
type RatioTable struct {
	Name  string `yaml:"name" json:"name"`
	Bands []Band `yaml:"bands" json:"bands"`
}

func bound(v float64) *float64 { return &v }

// DefaultRatioTable is the developing & emerging markets table.
var DefaultRatioTable = RatioTable{
	Name: "Developing & Emerging Markets",
	Bands: []Band{
		{Min: bound(1.0), Large: 1.2, Contender: 1.65},
		{Min: bound(0.5), Max: bound(0.99), Large: 1.15, Contender: 1.5},
		{Min: bound(0.0), Max: bound(0.49), Large: 1.1, Contender: 1.35},
		{Min: bound(-0.5), Max: bound(-0.01), Large: 1.05, Contender: 1.25},
		{Max: bound(-0.51), Large: 0.8, Contender: 0.9},
	},
}

// Lookup returns the ratio of the first band containing growth and that
// band's index. Returns 0 and -1 when nothing matches.
func (t RatioTable) Lookup(growth float64, mt model.MarketType) (float64, int) {
	for i, b := range t.Bands {
		if b.Contains(growth) {
			return b.RatioFor(mt), i
		}
	}
	return 0, -1
}

// Validate checks that the table can select a ratio at all.
func (t RatioTable) Validate() error {
	if len(t.Bands) == 0 {
		return errors.New("ratio table has no bands")
	}
	for i, b := range t.Bands {
		if b.Min == nil && b.Max == nil {
			return fmt.Errorf("band %d has neither min nor max", i+1)
		}
		if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
			return fmt.Errorf("band %d: min %.2f above max %.2f", i+1, *b.Min, *b.Max)
		}
		if b.Large < 0 || b.Contender < 0 {
			return fmt.Errorf("band %d has a negative ratio", i+1)
		}
	}
	return nil
}

// LoadRatioTable reads a YAML ratio table.
func LoadRatioTable(path string) (RatioTable, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		return RatioTable{}, fmt.Errorf("reading ratio table: %w", err)
	}
	var t RatioTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return RatioTable{}, fmt.Errorf("parsing ratio table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return RatioTable{}, fmt.Errorf("invalid ratio table %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	return t, nil
}

// ActiveRatioTable resolves the table to use: an explicit path wins over
// the config file setting, and the default table is used when neither is set.
func ActiveRatioTable(cfg Config, override string) (RatioTable, error) {
	path := override
	if path == "" {
		path = cfg.Ratios.File
	}
	if path == "" {
		return DefaultRatioTable, nil
	}
	return LoadRatioTable(path)
}
