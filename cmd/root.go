package cmd

import (
	"os"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/logging"
	"github.com/theirongolddev/mbudget/internal/model"
	"github.com/theirongolddev/mbudget/internal/pipeline"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagInput   string
	flagRatios  string
	flagQuiet   bool
	flagVerbose bool

	flagBrand           string
	flagYear            int
	flagSOM             float64
	flagNextSOM         float64
	flagLeader          string
	flagLeaderSOM       float64
	flagBrandGRP        float64
	flagCompGRP         float64
	flagCompGRPIncrease float64
	flagCPRP            float64
	flagTVFactor        float64
)

// logger is configured before any command runs.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "mbudget",
	Short: "SOV/SOM media budget planner",
	Long: "Plan next year's media budget from share of market targets: " +
		"SOV/SOM ratio lookup, GRP sizing and TV to all media budget.",
	RunE:              runSummary,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagInput, "input", "i", "", "Scenario YAML file (flags override its values)")
	pf.StringVar(&flagRatios, "ratios", "", "Ratio table YAML file (overrides config)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail")

	pf.StringVarP(&flagBrand, "brand", "b", "", "Brand name")
	pf.IntVarP(&flagYear, "year", "y", 0, "Current year (default from config, else this year)")
	pf.Float64Var(&flagSOM, "som", 0, "Current year share of market (%)")
	pf.Float64Var(&flagNextSOM, "next-som", 0, "Target share of market next year (%)")
	pf.StringVar(&flagLeader, "leader", "", "Category leader name")
	pf.Float64Var(&flagLeaderSOM, "leader-som", 0, "Category leader share of market (%)")
	pf.Float64Var(&flagBrandGRP, "brand-grp", 0, "Current brand GRP (reference only)")
	pf.Float64Var(&flagCompGRP, "comp-grp", 0, "Current competitor GRP")
	pf.Float64Var(&flagCompGRPIncrease, "comp-grp-increase", 0, "Expected competitor GRP increase (%)")
	pf.Float64Var(&flagCPRP, "cprp", 0, "TV cost per rating point")
	pf.Float64Var(&flagTVFactor, "tv-factor", 0, "TV to all media budget factor (default from config)")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	// .env may set MBUDGET_LOG_LEVEL, so it loads first.
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	logger = logging.New(logging.Options{Quiet: flagQuiet, Verbose: flagVerbose})
	return nil
}

// session is everything a command needs to compute a plan.
type session struct {
	cfg    config.Config
	table  config.RatioTable
	inputs model.Inputs
}

// loadSession is the shared loading path used by all commands: config,
// ratio table, scenario file, then explicitly set flags.
// Lenient callers (interactive surfaces) fall back to defaults when the
// config file is broken.
func loadSession(cmd *cobra.Command, lenient bool) (session, error) {
	cfg, err := config.Load()
	if err != nil {
		if !lenient {
			return session{}, err
		}
		logger.Warn().Err(err).Str("path", config.Path()).Msg("config unreadable, using defaults")
		cfg = config.DefaultConfig()
	}
	logger.Debug().Str("path", config.Path()).Bool("exists", config.Exists()).Msg("config loaded")

	table, err := config.ActiveRatioTable(cfg, flagRatios)
	if err != nil {
		return session{}, err
	}
	logger.Debug().Str("table", table.Name).Int("bands", len(table.Bands)).Msg("ratio table")

	in := pipeline.DefaultInputs(cfg.PlanningYear(), cfg.General.TVFactor)
	if flagInput != "" {
		if in, err = pipeline.LoadInputs(flagInput, in); err != nil {
			return session{}, err
		}
		logger.Debug().Str("file", flagInput).Msg("scenario loaded")
	}
	applyInputFlags(cmd.Flags().Changed, &in)

	return session{cfg: cfg, table: table, inputs: in}, nil
}

// applyInputFlags copies only the flags the user actually set, so a
// scenario file value is never replaced by a flag default.
func applyInputFlags(changed func(string) bool, in *model.Inputs) {
	if changed("brand") {
		in.Brand = flagBrand
	}
	if changed("year") {
		in.CurrentYear = flagYear
	}
	if changed("som") {
		in.CurrentSOM = flagSOM
	}
	if changed("next-som") {
		in.NextSOM = flagNextSOM
	}
	if changed("leader") {
		in.LeaderName = flagLeader
	}
	if changed("leader-som") {
		in.LeaderSOM = flagLeaderSOM
	}
	if changed("brand-grp") {
		in.BrandGRP = flagBrandGRP
	}
	if changed("comp-grp") {
		in.CompGRP = flagCompGRP
	}
	if changed("comp-grp-increase") {
		in.CompGRPIncrease = flagCompGRPIncrease
	}
	if changed("cprp") {
		in.CPRP = flagCPRP
	}
	if changed("tv-factor") {
		in.TVFactor = flagTVFactor
	}
}
