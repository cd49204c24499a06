package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/mbudget/internal/cli"
	"github.com/theirongolddev/mbudget/internal/pipeline"
	"github.com/theirongolddev/mbudget/internal/report"

	"github.com/spf13/cobra"
)

var flagSave string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute the plan and print every derived value",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringVar(&flagSave, "save", "", "Write the effective inputs to a scenario YAML file")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}

	plan := pipeline.Compute(s.inputs, s.table)
	doc := report.Build(plan, report.Options{Organization: s.cfg.Organization()})

	// Render output
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MEDIA BUDGET PLAN  %d", plan.NextYear)))
	fmt.Println()
	fmt.Printf("  %s\n", doc.BrandLine)
	fmt.Println(cli.RenderHeadline("Total Projected Budget (All Media)", cli.FormatMoney(plan.TotalBudget)))
	fmt.Println()

	var rows [][]string
	for i, sec := range doc.Sections {
		if i > 0 {
			rows = append(rows, []string{"---"})
		}
		for _, r := range sec.Rows {
			rows = append(rows, []string{r.Label, r.Value})
		}
	}

	table := cli.Table{
		Headers:   []string{"Item", "Value"},
		Rows:      rows,
		Highlight: len(rows),
	}
	fmt.Print(cli.RenderTable(table))

	// Print warnings
	warns := pipeline.Validate(s.inputs, s.table)
	if len(warns) > 0 {
		lines := make([]string, len(warns))
		for i, w := range warns {
			lines[i] = w.String()
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, cli.RenderWarnings(lines))
	}

	if flagSave != "" {
		if err := pipeline.SaveInputs(flagSave, s.inputs); err != nil {
			return err
		}
		fmt.Printf("\n  Saved inputs to %s\n", flagSave)
	}

	return nil
}
