package main

import (
	"busheadway/data"
	"github.com/spf13/cobra"
)

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config",
		Short: "Print a commented study configuration to start from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(data.ExampleStudy)
			return err
		},
	}
}
