package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch and process the next page of search results",
	Long: `Fetch one page of search results at the saved offset, extract contact
details from each new result (falling back to a live page scrape when the
snippet has no email), and persist the updated state, records, and XLSX
snapshot.

Afterwards the enrich and clean passes are offered interactively; pass --yes
to run both without prompting.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("harvest"); err != nil {
			return err
		}

		p, cleanup, err := buildPipeline()
		if err != nil {
			return err
		}
		defer cleanup()

		if _, err := p.Harvest(ctx); err != nil {
			return err
		}

		auto, _ := cmd.Flags().GetBool("yes")

		if auto || confirm("Update missing emails from existing data?") {
			if _, err := p.Enrich(ctx); err != nil {
				return err
			}
		}
		if auto || confirm("Clean existing data?") {
			if _, err := p.Clean(ctx); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	harvestCmd.Flags().Bool("yes", false, "run the enrich and clean passes without prompting")
	rootCmd.AddCommand(harvestCmd)
}
