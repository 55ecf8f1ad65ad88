// Package generate implements the manifest generation run: load the
// checkpoint, crawl within the call budget, save, report.
package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/contents"
	"github.com/megachile/datingdoc-manifest/pkg/manifest"
	"github.com/megachile/datingdoc-manifest/pkg/storage"
	"github.com/urfave/cli/v2"
)

func GenerateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	_, err := Generate(c.Context, models.DefaultConfig(), logger, os.Stdout, time.Now)
	return err
}

// Generate performs one run against cfg and returns the manifest as saved.
// Only a failure to write the manifest is reported as an error.
func Generate(ctx context.Context, cfg models.GeneratorConfig, logger *slog.Logger, out io.Writer, now func() time.Time) (*models.Manifest, error) {
	logger.Info("Starting manifest generation", "manifest", cfg.ManifestPath, "call_budget", cfg.CallBudget)

	s := &storage.Storage{}
	today := now().UTC().Format("2006-01-02")
	m := manifest.Load(cfg.ManifestPath, s, logger, today)

	client := contents.NewClient(cfg, logger)
	NewCrawler(client, cfg, logger).Run(ctx, m)
	m.LastUpdated = today

	progress := manifest.Snapshot(m)
	if err := manifest.Save(cfg.ManifestPath, m, s); err != nil {
		logger.Error("failed to save manifest", "path", cfg.ManifestPath, "error", err)
		return m, fmt.Errorf("saving manifest: %w", err)
	}

	budget := client.Budget()
	manifest.Report(out, progress, budget.Used(), budget.Limit())
	return m, nil
}
