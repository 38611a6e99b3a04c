package main

import (
	"fmt"

	"busheadway/driver"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				return driver.WriteJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "busheadway version %s\n", version)
			return nil
		},
	}
}
