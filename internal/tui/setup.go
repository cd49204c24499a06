package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the wizard answers as typed.
type setupValues struct {
	organization string
	year         string
	tvFactor     string
	outputDir    string
	theme        string
	includeChart bool
}

func setupValuesFrom(cfg config.Config) setupValues {
	return setupValues{
		organization: cfg.Organization(),
		year:         strconv.Itoa(cfg.PlanningYear()),
		tvFactor:     strconv.FormatFloat(cfg.General.TVFactor, 'f', -1, 64),
		outputDir:    cfg.Report.OutputDir,
		theme:        theme.ByName(cfg.Appearance.Theme).Name,
		includeChart: cfg.Report.IncludeChart,
	}
}

func validateYear(s string) error {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1900 || y > 9999 {
		return errors.New("enter a four-digit year")
	}
	return nil
}

func validateFactor(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number, e.g. 1.2")
	}
	return nil
}

func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to mbudget").
				Description("A few defaults for your budget plans.\nRun `mbudget setup` anytime to change them."),
			huh.NewInput().
				Title("Organization").
				Description("Shown in the report header and footer.").
				Value(&vals.organization),
			huh.NewInput().
				Title("Current year").
				Description("Plans are made for the year after this one.").
				Value(&vals.year).
				Validate(validateYear),
			huh.NewInput().
				Title("TV to all media factor").
				Description("Multiplier from TV budget to total media budget.").
				Value(&vals.tvFactor).
				Validate(validateFactor),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Report folder").
				Description("Where exported reports are written. Blank means the current directory.").
				Value(&vals.outputDir),
			huh.NewConfirm().
				Title("Add a GRP chart to reports?").
				Value(&vals.includeChart),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)
}

// setupValuesToConfig merges the wizard answers into cfg.
func setupValuesToConfig(cfg config.Config, vals setupValues) (config.Config, error) {
	year, err := strconv.Atoi(strings.TrimSpace(vals.year))
	if err != nil {
		return cfg, fmt.Errorf("parsing year: %w", err)
	}
	factor, err := strconv.ParseFloat(strings.TrimSpace(vals.tvFactor), 64)
	if err != nil {
		return cfg, fmt.Errorf("parsing tv factor: %w", err)
	}

	cfg.General.Organization = strings.TrimSpace(vals.organization)
	cfg.General.DefaultYear = year
	cfg.General.TVFactor = factor
	cfg.Report.OutputDir = strings.TrimSpace(vals.outputDir)
	cfg.Report.IncludeChart = vals.includeChart
	if theme.Known(vals.theme) {
		cfg.Appearance.Theme = vals.theme
	}
	return cfg, nil
}

// RunSetup runs the setup wizard on its own and saves the result.
func RunSetup(cfg config.Config) (config.Config, error) {
	vals := setupValuesFrom(cfg)
	if err := newSetupForm(&vals).Run(); err != nil {
		return cfg, err
	}

	cfg, err := setupValuesToConfig(cfg, vals)
	if err != nil {
		return cfg, err
	}
	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	return cfg, nil
}
