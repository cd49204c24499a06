// Package cmd implements the mbudget CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/logging"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Organization:  %s\n", cfg.Organization())
	if cfg.General.DefaultYear > 0 {
		fmt.Printf("    Default year:  %d\n", cfg.General.DefaultYear)
	} else {
		fmt.Printf("    Default year:  %d (calendar)\n", cfg.PlanningYear())
	}
	fmt.Printf("    TV factor:     %g\n", cfg.General.TVFactor)
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Output dir:    %s\n", orDot(cfg.Report.OutputDir))
	fmt.Printf("    Format:        %s\n", cfg.Report.Format)
	fmt.Printf("    Include chart: %v\n", cfg.Report.IncludeChart)
	fmt.Println()

	fmt.Println("  [Ratios]")
	table, err := config.ActiveRatioTable(cfg, flagRatios)
	if err != nil {
		fmt.Printf("    Table: invalid (%v)\n", err)
	} else {
		fmt.Printf("    Table: %s (%d bands)\n", table.Name, len(table.Bands))
	}
	if cfg.Ratios.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Ratios.File)
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: http://%s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Environment]")
	for _, name := range []string{
		"MBUDGET_ORGANIZATION", "MBUDGET_OUTPUT_DIR", "MBUDGET_ADDR",
		"MBUDGET_RATIOS_FILE", "MBUDGET_DEFAULT_YEAR", logging.EnvLevel,
	} {
		if v, ok := os.LookupEnv(name); ok {
			fmt.Printf("    %s=%s\n", name, v)
		}
	}
	fmt.Println()

	fmt.Println("  Run `mbudget setup` to reconfigure.")
	return nil
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
