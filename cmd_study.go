package main

import (
	"busheadway/driver"
	"github.com/spf13/cobra"
)

// addReplicationFlags registers the flags shared by commands that run
// many replications.
func addReplicationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("replications", 0, "number of independent replications per policy")
	cmd.Flags().IntSlice("checkpoints", nil, "replication counts to report mean/std dev at (e.g. 5,10,15,20)")
	cmd.Flags().Int("workers", 0, "run replications concurrently on this many workers (0 = sequential)")
	cmd.Flags().String("csv", "", "write a per-replication CSV report to this file or directory")
}

func newStudyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Run the full headway study",
		Long: `Run the hourly A-headway profile, then the replications with free
overtaking and with overtaking forbidden, all from one seed.`,
		RunE: runStudy,
	}
	addReplicationFlags(cmd)
	return cmd
}

func runStudy(cmd *cobra.Command, args []string) error {
	cfg, st, logger, err := newStudyFromCmd(cmd)
	if err != nil {
		return err
	}

	sum, err := st.Run(cmd.Context())
	if err != nil {
		return err
	}

	if path, err := driver.WriteCSVReport(cfg.Output.CSVPath, sum.FreeOvertaking, sum.NoPassing); err != nil {
		return err
	} else if path != "" {
		logger.Info("CSV report written", "path", path)
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cfg) {
		return driver.WriteJSON(out, sum)
	}
	driver.PrintConsoleReport(out, sum)
	return nil
}
