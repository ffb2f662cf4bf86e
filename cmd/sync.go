package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"stock-sync/core/odoo"
	"stock-sync/core/reconcile"
	"stock-sync/core/woocommerce"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	jsonSync   bool
)

// syncCmd runs one reconciliation from Odoo into WooCommerce.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push Odoo stock quantities to WooCommerce",
	Long: `Loads the product mapping, reads each product's quantity from Odoo and
overwrites the stock of the mapped WooCommerce product.

Products missing in Odoo are skipped. Failed WooCommerce updates are counted
but do not fail the command; only an Odoo connection failure does.

Examples:
  # Full run
  stock-sync sync

  # Fetch and report without touching WooCommerce
  stock-sync sync --dry-run --json`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Fetch quantities without updating WooCommerce")
	syncCmd.Flags().BoolVar(&jsonSync, "json", false, "Print the run report as JSON")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	source := odoo.NewClient(a.cfg.Odoo, a.logger)
	defer source.Close()
	sink := woocommerce.NewClient(a.cfg.WooCommerce, a.logger)

	engine := reconcile.NewEngine(a.mappingLoader(), source, sink, a.logger, reconcile.Options{DryRun: dryRunSync})
	report, err := engine.Run(ctx)
	if jsonSync {
		if encErr := printReport(cmd, report); encErr != nil {
			a.logger.Warn("Failed to print report", zap.Error(encErr))
		}
	}
	if err != nil {
		return err
	}

	if report.Summary.TotalErrors > 0 {
		a.logger.Warn("Some products could not be updated",
			zap.Int("errors", report.Summary.TotalErrors))
	}
	return nil
}

func printReport(cmd *cobra.Command, report *reconcile.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
