package main

import (
	"github.com/spf13/cobra"

	"github.com/imbecility/tubesave/pkg/gateway"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [URL]",
		Short: "Show title, author and duration of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := gateway.New(cfg)
			if err != nil {
				return err
			}
			summary, err := svc.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}
