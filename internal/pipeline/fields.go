package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/mbudget/internal/model"
)

// Field describes one editable input of the planning form.
type Field struct {
	Key   string
	Label string
	Hint  string
	Text  bool
}

// Fields lists the form inputs in display order. Keys match the YAML and
// JSON names of model.Inputs.
var Fields = []Field{
	{Key: "brand", Label: "Brand Name", Text: true},
	{Key: "current_year", Label: "Current Year"},
	{Key: "current_som", Label: "Current Year SOM (%)", Hint: "Current Share of Market"},
	{Key: "next_som", Label: "Next Year SOM (%)", Hint: "Next year's Share of Market"},
	{Key: "leader_name", Label: "Category Leader Name", Text: true},
	{Key: "leader_som", Label: "Leader SOM (%)", Hint: "Category Leader's Share of Market"},
	{Key: "brand_grp", Label: "Brand GRP (current)"},
	{Key: "comp_grp", Label: "Competitor GRP (current)"},
	{Key: "comp_grp_increase", Label: "Competitor GRP Increase (%)"},
	{Key: "cprp", Label: "CPRP (TV)", Hint: "Cost per Rating Point for TV"},
	{Key: "tv_factor", Label: "TV to All Media Factor", Hint: "Multiplier to convert TV budget to total media budget"},
}

// ParseNumber reads a numeric form value. Blank or unparsable text is 0,
// the same as an empty number box. So are "inf" and "nan", which a number
// box would not accept.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SetField stores raw into the input named key. Unknown keys are ignored.
func SetField(in *model.Inputs, key, raw string) {
	switch key {
	case "brand":
		in.Brand = raw
	case "leader_name":
		in.LeaderName = raw
	case "current_year":
		in.CurrentYear = int(ParseNumber(raw))
	case "current_som":
		in.CurrentSOM = ParseNumber(raw)
	case "next_som":
		in.NextSOM = ParseNumber(raw)
	case "leader_som":
		in.LeaderSOM = ParseNumber(raw)
	case "brand_grp":
		in.BrandGRP = ParseNumber(raw)
	case "comp_grp":
		in.CompGRP = ParseNumber(raw)
	case "comp_grp_increase":
		in.CompGRPIncrease = ParseNumber(raw)
	case "cprp":
		in.CPRP = ParseNumber(raw)
	case "tv_factor":
		in.TVFactor = ParseNumber(raw)
	}
}

// FieldValue returns the input named key as form text. Zero numbers are
// shown as "0".
func FieldValue(in model.Inputs, key string) string {
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	switch key {
	case "brand":
		return in.Brand
	case "leader_name":
		return in.LeaderName
	case "current_year":
		return strconv.Itoa(in.CurrentYear)
	case "current_som":
		return num(in.CurrentSOM)
	case "next_som":
		return num(in.NextSOM)
	case "leader_som":
		return num(in.LeaderSOM)
	case "brand_grp":
		return num(in.BrandGRP)
	case "comp_grp":
		return num(in.CompGRP)
	case "comp_grp_increase":
		return num(in.CompGRPIncrease)
	case "cprp":
		return num(in.CPRP)
	case "tv_factor":
		return num(in.TVFactor)
	}
	return ""
}

// FieldLabel returns the label for key, with "Next Year" replaced by the
// planning year.
func FieldLabel(f Field, nextYear int) string {
	return strings.Replace(f.Label, "Next Year", strconv.Itoa(nextYear), 1)
}
