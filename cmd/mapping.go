package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"stock-sync/core/mapping"
	"stock-sync/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mappingCmd prints the configured product mapping.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Show the product mapping",
	Long:  `Loads the product mapping from the configured source and prints it in order.`,
	RunE:  runMapping,
}

// mappingUploadCmd validates a local mapping file and stores it in the bucket.
var mappingUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a mapping file to object storage",
	Long: `Validates a local JSON or YAML mapping file and uploads it to the storage
bucket under MAPPING_OBJECT, where the storage mapping source reads it.`,
	Args: cobra.ExactArgs(1),
	RunE: runMappingUpload,
}

func init() {
	mappingCmd.AddCommand(mappingUploadCmd)
	RootCmd.AddCommand(mappingCmd)
}

func runMapping(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.mappingLoader().Read(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load mapping: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BARCODE\tWC_ID")
	for e := range m.All() {
		fmt.Fprintf(w, "%s\t%d\n", e.SourceKey, e.SinkID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	a.logger.Info("Mapping loaded",
		zap.String("source", a.cfg.Mapping.Source),
		zap.Int("count", m.Len()))
	return nil
}

func runMappingUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := mapping.FormatFromName(path)
	m, err := mapping.Parse(data, format, a.logger)
	if err != nil {
		return err
	}

	client := a.storage
	if client == nil {
		if client, err = storage.NewClient(a.cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	contentType := "application/json"
	if format == mapping.FormatYAML {
		contentType = "application/yaml"
	}

	object := a.cfg.Mapping.Object
	if err := storage.Upload(context.Background(), client, a.cfg.Storage.Bucket, object, data, contentType); err != nil {
		return err
	}

	a.logger.Info("Mapping uploaded",
		zap.String("bucket", a.cfg.Storage.Bucket),
		zap.String("object", object),
		zap.Int("count", m.Len()))
	return nil
}
