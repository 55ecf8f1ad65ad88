// Package status prints the checkpoint progress of the manifest without
// making any remote calls.
package status

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/manifest"
	"github.com/megachile/datingdoc-manifest/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// View is the YAML document printed by the status command.
type View struct {
	Manifest    string            `yaml:"manifest"`
	Exists      bool              `yaml:"exists"`
	SizeBytes   int64             `yaml:"size_bytes,omitempty"`
	Modified    string            `yaml:"modified,omitempty"`
	LastUpdated string            `yaml:"last_updated,omitempty"`
	Complete    bool              `yaml:"complete"`
	Galleries   map[string]int    `yaml:"galleries"`
	Interests   int               `yaml:"interests"`
	Progress    manifest.Progress `yaml:"progress"`
}

func StatusAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	return Print(os.Stdout, models.DefaultConfig(), logger)
}

// Print renders the View for the manifest at cfg.ManifestPath.
func Print(w io.Writer, cfg models.GeneratorConfig, logger *slog.Logger) error {
	v := Build(cfg, logger)
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func Build(cfg models.GeneratorConfig, logger *slog.Logger) View {
	s := &storage.Storage{}
	exists := s.HasFile(cfg.ManifestPath)
	m := manifest.Load(cfg.ManifestPath, s, logger, time.Now().UTC().Format("2006-01-02"))

	v := View{
		Manifest:  cfg.ManifestPath,
		Exists:    exists,
		Galleries: map[string]int{},
		Interests: len(m.Images.Interests),
	}
	if exists {
		v.LastUpdated = m.LastUpdated
		if stats, err := s.GetFileStats(cfg.ManifestPath); err == nil {
			v.SizeBytes = stats.SizeBytes
			v.Modified = stats.ModTime.UTC().Format(time.RFC3339)
		} else {
			logger.Warn("Could not stat manifest", "path", cfg.ManifestPath, "error", err)
		}
	}
	for _, name := range cfg.Galleries {
		files, _ := m.Images.Gallery(name)
		v.Galleries[name] = len(files)
	}

	v.Progress = manifest.Snapshot(m)
	// Load gives a completed manifest a fresh, undiscovered checkpoint.
	if v.Progress.Total == 0 && v.Progress.Done() {
		v.Progress.Total = len(m.Images.Interests)
		v.Progress.Processed = len(m.Images.Interests)
	}
	v.Complete = exists && v.Progress.Done()
	return v
}
