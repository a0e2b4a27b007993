package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erazemk/bamboorat/internal/config"
	"github.com/erazemk/bamboorat/internal/snapshot"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a JSON snapshot of all records to the storage bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.SnapshotsEnabled() {
				return errors.New("object storage is not configured: set " +
					config.EnvS3Endpoint + " and " + config.EnvStorageBucket)
			}
			ctx := cliContext(cmd.Context())

			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			client, err := snapshot.NewClient(cfg)
			if err != nil {
				return err
			}
			exporter := snapshot.NewExporter(client, cfg.StorageBucket, cfg.Project(), nil)
			if err := exporter.EnsureBucket(ctx); err != nil {
				return err
			}

			records, err := a.records.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("listing records: %w", err)
			}

			res, err := exporter.Export(ctx, records)
			if err != nil {
				return err
			}

			slog.Info("snapshot uploaded", "bucket", res.Bucket, "key", res.Key, "records", res.Records, "size", res.Size)
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s (%d records)\n", res.Bucket, res.Key, res.Records)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3 compatible endpoint (host:port)")
	cmd.Flags().StringVar(&cfg.StorageBucket, "bucket", cfg.StorageBucket, "bucket to write snapshots to")
	cmd.Flags().BoolVar(&cfg.S3UseSSL, "s3-ssl", cfg.S3UseSSL, "use TLS for the S3 endpoint")
	return cmd
}
