package cmd

import (
	"fmt"

	"github.com/theirongolddev/mbudget/internal/cli"
	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/pipeline"

	"github.com/spf13/cobra"
)

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Show the SOV/SOM ratio table and the band the plan falls in",
	RunE:  runBands,
}

func init() {
	rootCmd.AddCommand(bandsCmd)
}

func runBands(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}
	plan := pipeline.Compute(s.inputs, s.table)

	rows := make([][]string, 0, len(s.table.Bands))
	for i, b := range s.table.Bands {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			bandRange(b),
			cli.FormatFixed(b.Large, 2),
			cli.FormatFixed(b.Contender, 2),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     s.table.Name,
		Headers:   []string{"Band", "SOM Growth", "Large", "Contender"},
		Rows:      rows,
		Highlight: plan.BandIndex + 1,
	}))
	fmt.Println()

	if plan.BandIndex < 0 {
		fmt.Printf("  Growth %s falls between bands; ratio is 0.\n", cli.FormatPercent(plan.GrowthPct))
		return nil
	}
	fmt.Printf("  Growth %s, %s market: band %d, ratio %s\n",
		cli.FormatPercent(plan.GrowthPct), plan.MarketType, plan.BandIndex+1, cli.FormatFixed(plan.Ratio, 2))
	return nil
}

func bandRange(b config.Band) string {
	switch {
	case b.Min != nil && b.Max != nil:
		return fmt.Sprintf("%s to %s", cli.FormatFixed(*b.Min, 2), cli.FormatFixed(*b.Max, 2))
	case b.Min != nil:
		return fmt.Sprintf("%s and above", cli.FormatFixed(*b.Min, 2))
	case b.Max != nil:
		return fmt.Sprintf("%s and below", cli.FormatFixed(*b.Max, 2))
	}
	return "never"
}
