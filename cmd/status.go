package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/directory-cli/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show checkpoint and dataset counters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("status"); err != nil {
			return err
		}

		state := store.NewStateStore(cfg.Output.StatePath()).Load()
		records := store.NewRecordStore(cfg.Output.RecordsPath()).Load()

		missing := 0
		for i := range records {
			if !records[i].HasEmail() {
				missing++
			}
		}

		fmt.Printf("next start index:  %d\n", state.StartIndex)
		fmt.Printf("scraped urls:      %d\n", len(state.ScrapedURLs))
		fmt.Printf("records:           %d\n", len(records))
		fmt.Printf("missing email:     %d\n", missing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
