package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("config unreadable, starting from defaults")
		cfg = config.DefaultConfig()
	}

	if _, err := tui.RunSetup(cfg); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `mbudget setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
