package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rewrite the XLSX snapshot from the records file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("export"); err != nil {
			return err
		}

		p, cleanup, err := buildPipeline()
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := p.Export(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("workbook exported",
			zap.String("path", cfg.Output.WorkbookPath()), zap.Int("records", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
