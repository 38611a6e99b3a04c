package main

import (
	"busheadway/driver"
	"github.com/spf13/cobra"
)

func newSingleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Simulate one replication and print every bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, _, err := newStudyFromCmd(cmd)
			if err != nil {
				return err
			}

			tl, err := st.Single(cfg.NoPassing)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cfg) {
				return driver.WriteJSON(out, struct {
					Seed      int64 `json:"seed"`
					NoPassing bool  `json:"no_passing"`
					Timeline  any   `json:"timeline"`
				}{st.Seed(), cfg.NoPassing, tl})
			}
			driver.PrintTimeline(out, tl)
			return nil
		},
	}
	cmd.Flags().Bool("no-passing", false, "forbid overtaking between A and B")
	cmd.Flags().Bool("trace", false, "log every simulator event (same as --log-level trace)")
	return cmd
}
