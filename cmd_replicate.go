package main

import (
	"busheadway/driver"
	"github.com/spf13/cobra"
)

func newReplicateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replicate",
		Short: "Run replications under one overtaking policy",
		Long: `Run independent replications and report the mean and standard
deviation of the per-run mean B headway at each checkpoint, together with
the running mean and variance after every replication.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, logger, err := newStudyFromCmd(cmd)
			if err != nil {
				return err
			}

			res, err := st.Replications(cmd.Context(), cfg.NoPassing)
			if err != nil {
				return err
			}

			if path, err := driver.WriteCSVReport(cfg.Output.CSVPath, res); err != nil {
				return err
			} else if path != "" {
				logger.Info("CSV report written", "path", path)
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cfg) {
				return driver.WriteJSON(out, struct {
					Seed int64 `json:"seed"`
					driver.ReplicationResult
				}{st.Seed(), res})
			}
			driver.PrintReplications(out, res)
			return nil
		},
	}
	addReplicationFlags(cmd)
	cmd.Flags().Bool("no-passing", false, "forbid overtaking between A and B")
	return cmd
}
