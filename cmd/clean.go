package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Re-normalize all records and drop duplicate websites",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("clean"); err != nil {
			return err
		}

		p, cleanup, err := buildPipeline()
		if err != nil {
			return err
		}
		defer cleanup()

		_, err = p.Clean(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
