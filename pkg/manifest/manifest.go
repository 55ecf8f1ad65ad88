// Package manifest loads, saves and summarizes the site manifest checkpoint.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/storage"
)

// PreviewLimit is how many remaining folder names Report lists.
const PreviewLimit = 5

// Load reads the manifest at path. A missing file yields an empty manifest;
// an unparseable one is discarded with a warning.
func Load(path string, s *storage.Storage, logger *slog.Logger, today string) *models.Manifest {
	if !s.HasFile(path) {
		return models.NewManifest(today)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		logger.Warn("Could not read existing manifest, starting fresh", "path", path, "error", err)
		return models.NewManifest(today)
	}

	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("Could not parse existing manifest, starting fresh", "path", path, "error", err)
		return models.NewManifest(today)
	}
	m.Normalize()

	logger.Info("Loaded existing manifest", "path", path, "interests", len(m.Images.Interests))
	return &m
}

// Save writes m to path as indented JSON, overwriting the file in full.
// A drained checkpoint is removed from m before writing.
func Save(path string, m *models.Manifest, s *storage.Storage) error {
	if m.ProcessingStatus.Complete() {
		m.ProcessingStatus = nil
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling manifest: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving manifest: %w", err)
	}
	return nil
}

// Progress is a snapshot of the crawl checkpoint.
type Progress struct {
	Total     int      `yaml:"total_folders"`
	Processed int      `yaml:"processed_folders"`
	Remaining []string `yaml:"remaining_folders"`
}

// Snapshot captures the checkpoint of m. A manifest without a checkpoint
// reports every known interest as processed.
func Snapshot(m *models.Manifest) Progress {
	if m.ProcessingStatus == nil {
		n := len(m.Images.Interests)
		return Progress{Total: n, Processed: n, Remaining: []string{}}
	}
	return Progress{
		Total:     m.ProcessingStatus.TotalFolders,
		Processed: m.ProcessingStatus.ProcessedFolders,
		Remaining: append([]string{}, m.ProcessingStatus.RemainingFolders...),
	}
}

// Done reports whether no folders remain.
func (p Progress) Done() bool {
	return len(p.Remaining) == 0
}

// Report prints the end-of-run summary for the operator.
func Report(w io.Writer, p Progress, callsUsed, callBudget int) {
	fmt.Fprintln(w, "\nManifest saved!")
	fmt.Fprintf(w, "Progress: %d/%d folders processed\n", p.Processed, p.Total)
	fmt.Fprintf(w, "Remaining: %d folders\n", len(p.Remaining))
	fmt.Fprintf(w, "API calls used: %d/%d\n", callsUsed, callBudget)

	if p.Done() {
		fmt.Fprintln(w, "\nAll folders processed! Manifest is complete.")
		return
	}

	fmt.Fprintf(w, "\nWait 1 hour and run again to process remaining %d folders:\n", len(p.Remaining))
	for _, folder := range Preview(p.Remaining, PreviewLimit) {
		fmt.Fprintf(w, "   - %s\n", folder)
	}
	if extra := len(p.Remaining) - PreviewLimit; extra > 0 {
		fmt.Fprintf(w, "   ... and %d more\n", extra)
	}
}

// Preview returns at most n leading names.
func Preview(names []string, n int) []string {
	if len(names) <= n {
		return names
	}
	return names[:n]
}
