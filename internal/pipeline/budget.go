// Package pipeline derives a media budget plan from planner inputs.
package pipeline

import (
	"fmt"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
)

// ClassifyMarket returns Contender when half the leader's share is still
// above the brand's current share.
func ClassifyMarket(currentSOM, leaderSOM float64) model.MarketType {
	if leaderSOM/2 > currentSOM {
		return model.MarketContender
	}
	return model.MarketLarge
}

// Compute derives every plan value from in. It never fails: degenerate
// inputs produce zero outputs.
func Compute(in model.Inputs, table config.RatioTable) model.Plan {
	p := model.Plan{
		Inputs:   in,
		NextYear: in.NextYear(),
	}

	p.GrowthPct = in.NextSOM - in.CurrentSOM
	p.MarketType = ClassifyMarket(in.CurrentSOM, in.LeaderSOM)
	p.Ratio, p.BandIndex = table.Lookup(p.GrowthPct, p.MarketType)

	p.ExpectedSOV = in.NextSOM * p.Ratio
	p.NextCompGRP = in.CompGRP * (1 + in.CompGRPIncrease/100)

	// Competitors hold what the brand does not; at or below zero there is
	// no market left to size.
	p.CompShare = 1 - p.ExpectedSOV/100
	if p.CompShare > 0 {
		p.TotalMarketGRP = p.NextCompGRP / p.CompShare
	}

	p.NextYearBrandGRP = p.TotalMarketGRP * (p.ExpectedSOV / 100)
	p.NextYearTVBudget = p.NextYearBrandGRP * in.CPRP
	p.TotalBudget = p.NextYearTVBudget * in.TVFactor

	return p
}

// Validate returns non-fatal warnings about in. It never blocks Compute.
func Validate(in model.Inputs, table config.RatioTable) []model.Warning {
	var warns []model.Warning
	add := func(field, format string, args ...any) {
		warns = append(warns, model.Warning{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	shares := []struct {
		field string
		value float64
	}{
		{"current_som", in.CurrentSOM},
		{"next_som", in.NextSOM},
		{"leader_som", in.LeaderSOM},
	}
	for _, s := range shares {
		if s.value < 0 {
			add(s.field, "share %.2f%% is negative", s.value)
		} else if s.value > 100 {
			add(s.field, "share %.2f%% is above 100%%", s.value)
		}
	}

	if in.CompGRP < 0 {
		add("comp_grp", "competitor GRP %.2f is negative", in.CompGRP)
	}
	if in.CPRP <= 0 {
		add("cprp", "cost per rating point is not set; budgets will be zero")
	}
	if in.TVFactor < 1 {
		add("tv_factor", "TV to all media factor %.2f is below 1", in.TVFactor)
	}

	p := Compute(in, table)
	if p.BandIndex < 0 {
		add("next_som", "SOM growth %.3f%% falls outside every ratio band; ratio is 0", p.GrowthPct)
	}
	if p.CompShare <= 0 {
		add("next_som", "required SOV %.2f%% leaves no competitor share; total market GRP is 0", p.ExpectedSOV)
	}

	return warns
}
