package main

import (
	"busheadway/driver"
	"github.com/spf13/cobra"
)

func newHourlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hourly",
		Short: "Profile the mean departure headway at A for each simulated hour",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, _, err := newStudyFromCmd(cmd)
			if err != nil {
				return err
			}

			hourly, err := st.Hourly()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cfg) {
				return driver.WriteJSON(out, map[string]any{"seed": st.Seed(), "hourly_mean_headway_a": hourly})
			}
			driver.PrintHourly(out, hourly)
			return nil
		},
	}
}
