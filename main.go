package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"busheadway/config"
	"busheadway/driver"
	"busheadway/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "busheadway",
		Short: "Monte Carlo headway study of a two-stop bus line",
		Long: `busheadway simulates buses leaving stop A at random intervals and
travelling to stop B, with or without overtaking on the way.

It reports how irregular the headways at B become, averaged over many
independent replications. Running without a subcommand runs the full study.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runStudy,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML study configuration file")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed (default: from config, else the clock)")
	rootCmd.PersistentFlags().Duration("horizon", 0, "simulated period during which buses leave A (e.g. 5h)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: info, debug or trace")
	rootCmd.PersistentFlags().String("format", "", "report format: text or json")
	rootCmd.PersistentFlags().Int("max-trips", 0, "abort a replication recording more buses than this (0 = no cap)")
	addReplicationFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCmd(),
		newStudyCmd(),
		newSingleCmd(),
		newReplicateCmd(),
		newHourlyCmd(),
		newExampleConfigCmd(),
	)
	return rootCmd
}

// loadConfig resolves the study configuration for cmd: defaults, the
// --config file, BUSHEADWAY_* variables, then flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.StudyConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		v, _ := flags.GetInt64("seed")
		cfg.Seed = &v
	}
	if flags.Changed("horizon") {
		cfg.Horizon, _ = flags.GetDuration("horizon")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("max-trips") {
		cfg.MaxTrips, _ = flags.GetInt("max-trips")
	}
	if flags.Changed("replications") {
		cfg.Replications, _ = flags.GetInt("replications")
	}
	if flags.Changed("checkpoints") {
		cfg.Checkpoints, _ = flags.GetIntSlice("checkpoints")
	}
	if flags.Changed("no-passing") {
		cfg.NoPassing, _ = flags.GetBool("no-passing")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("csv") {
		cfg.Output.CSVPath, _ = flags.GetString("csv")
	}
	if trace, _ := flags.GetBool("trace"); trace {
		cfg.Logging.Level = "trace"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newStudyFromCmd loads the configuration and builds a study logging to the
// command's stderr.
func newStudyFromCmd(cmd *cobra.Command) (*config.StudyConfig, *driver.Study, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	opt := driver.Options{
		Line:         cfg.ModelLine(),
		Horizon:      cfg.HorizonMinutes(),
		Hours:        cfg.Hours(),
		Replications: cfg.Replications,
		Checkpoints:  cfg.Checkpoints,
		NoPassing:    cfg.NoPassing,
		Workers:      cfg.Workers,
		MaxTrips:     cfg.MaxTrips,
		Seed:         cfg.Seed,
	}
	st := driver.NewStudy(opt, logger)
	logger.Debug("configuration loaded", "seed", st.Seed(), "horizon", cfg.Horizon,
		"replications", cfg.Replications, "workers", cfg.Workers, "no_passing", cfg.NoPassing)
	return cfg, st, logger, nil
}

func jsonOutput(cfg *config.StudyConfig) bool {
	return cfg.Output.Format == "json"
}
