// Package model defines the inputs and derived values of a media budget plan.
package model

import "math"

// MarketType classifies the brand against the category leader.
type MarketType string

const (
	MarketLarge     MarketType = "Large"
	MarketContender MarketType = "Contender"
)

// Inputs holds everything a planner types into the form.
// Unset numbers are zero and unset text is empty; the model never rejects them.
type Inputs struct {
	Brand       string `yaml:"brand" json:"brand"`
	CurrentYear int    `yaml:"current_year" json:"current_year"`

	CurrentSOM float64 `yaml:"current_som" json:"current_som"`
	NextSOM    float64 `yaml:"next_som" json:"next_som"`

	LeaderName string  `yaml:"leader_name" json:"leader_name"`
	LeaderSOM  float64 `yaml:"leader_som" json:"leader_som"`

	// BrandGRP is shown next to the derived next-year brand GRP but never
	// feeds the calculation.
	BrandGRP float64 `yaml:"brand_grp" json:"brand_grp"`

	CompGRP         float64 `yaml:"comp_grp" json:"comp_grp"`
	CompGRPIncrease float64 `yaml:"comp_grp_increase" json:"comp_grp_increase"`

	CPRP     float64 `yaml:"cprp" json:"cprp"`
	TVFactor float64 `yaml:"tv_factor" json:"tv_factor"`
}

// NextYear is the planning year.
func (in Inputs) NextYear() int {
	return in.CurrentYear + 1
}

// Plan holds the values derived from Inputs.
type Plan struct {
	Inputs Inputs `json:"inputs"`

	NextYear   int        `json:"next_year"`
	GrowthPct  float64    `json:"growth_pct"`
	MarketType MarketType `json:"market_type"`
	Ratio      float64    `json:"ratio"`
	BandIndex  int        `json:"band_index"` // -1 when no band matched

	ExpectedSOV      float64 `json:"expected_sov"`
	NextCompGRP      float64 `json:"next_comp_grp"`
	CompShare        float64 `json:"comp_share"`
	TotalMarketGRP   float64 `json:"total_market_grp"`
	NextYearBrandGRP float64 `json:"next_year_brand_grp"`
	NextYearTVBudget float64 `json:"next_year_tv_budget"`
	TotalBudget      float64 `json:"total_budget"`
}

// Finite reports whether every derived value is a real number. Huge inputs
// can overflow to ±Inf, and Inf/Inf yields NaN.
func (p Plan) Finite() bool {
	for _, v := range []float64{
		p.GrowthPct, p.Ratio, p.ExpectedSOV, p.NextCompGRP, p.CompShare,
		p.TotalMarketGRP, p.NextYearBrandGRP, p.NextYearTVBudget, p.TotalBudget,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Warning is a non-fatal observation about the inputs.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}
