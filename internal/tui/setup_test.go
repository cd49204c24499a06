package tui

import (
	"testing"

	"github.com/theirongolddev/mbudget/internal/config"
)

func TestValidateYear(t *testing.T) {
	for _, ok := range []string{"2026", " 1999 "} {
		if err := validateYear(ok); err != nil {
			t.Errorf("validateYear(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "26", "year", "10000"} {
		if validateYear(bad) == nil {
			t.Errorf("validateYear(%q) accepted", bad)
		}
	}
}

func TestValidateFactor(t *testing.T) {
	if err := validateFactor("1.2"); err != nil {
		t.Fatalf("validateFactor(1.2) = %v", err)
	}
	for _, bad := range []string{"0", "-1", "x"} {
		if validateFactor(bad) == nil {
			t.Errorf("validateFactor(%q) accepted", bad)
		}
	}
}

func TestSetupValuesRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.DefaultYear = 2025
	cfg.Appearance.Theme = "tokyo-night"

	vals := setupValuesFrom(cfg)
	if vals.year != "2025" || vals.theme != "tokyo-night" {
		t.Fatalf("vals = %+v", vals)
	}

	vals.organization = "  Acme Media "
	vals.tvFactor = "1.5"
	vals.theme = "neon"
	got, err := setupValuesToConfig(cfg, vals)
	if err != nil {
		t.Fatalf("setupValuesToConfig: %v", err)
	}
	if got.General.Organization != "Acme Media" {
		t.Errorf("Organization = %q", got.General.Organization)
	}
	if got.General.TVFactor != 1.5 {
		t.Errorf("TVFactor = %v, want 1.5", got.General.TVFactor)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Errorf("unknown theme replaced the old one: %q", got.Appearance.Theme)
	}
}

func TestSetupValuesRejectBadYear(t *testing.T) {
	vals := setupValuesFrom(config.DefaultConfig())
	vals.year = "soon"
	if _, err := setupValuesToConfig(config.DefaultConfig(), vals); err == nil {
		t.Fatal("bad year accepted")
	}
}
