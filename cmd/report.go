package cmd

import (
	"fmt"

	"github.com/theirongolddev/mbudget/internal/pipeline"
	"github.com/theirongolddev/mbudget/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOut    string
	flagChart  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the budget plan as PDF, XLSX, Markdown or HTML",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "pdf, xlsx, md or html (default from config)")
	reportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file or directory (default from config)")
	reportCmd.Flags().BoolVar(&flagChart, "chart", false, "Include the GRP split chart")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}

	formatName := s.cfg.Report.Format
	if cmd.Flags().Changed("format") {
		formatName = flagFormat
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	out := s.cfg.Report.OutputDir
	if cmd.Flags().Changed("out") {
		out = flagOut
	}
	includeChart := s.cfg.Report.IncludeChart
	if cmd.Flags().Changed("chart") {
		includeChart = flagChart
	}

	plan := pipeline.Compute(s.inputs, s.table)
	doc := report.Build(plan, report.Options{
		Organization: s.cfg.Organization(),
		IncludeChart: includeChart,
	})

	path, err := report.WriteFile(out, doc, format)
	if err != nil {
		return err
	}
	logger.Debug().Str("id", doc.ID).Str("format", string(format)).Msg("report written")

	if !flagQuiet {
		fmt.Printf("  Saved %s report to %s\n", format, path)
	}
	return nil
}
