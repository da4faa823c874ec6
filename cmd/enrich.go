package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing contacts on existing records",
	Long: `Re-visit every record still missing an email: scrape its website again
and, when an Anthropic key is configured, ask Claude for records the scrape
could not resolve.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		p, cleanup, err := buildPipeline()
		if err != nil {
			return err
		}
		defer cleanup()

		_, err = p.Enrich(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
