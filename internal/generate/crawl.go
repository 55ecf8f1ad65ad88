package generate

import (
	"context"
	"errors"
	"log/slog"
	"path"

	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/contents"
	"github.com/megachile/datingdoc-manifest/pkg/fetcher"
	"github.com/megachile/datingdoc-manifest/pkg/media"
)

// Lister is the remote side of a crawl.
type Lister interface {
	ListDir(ctx context.Context, path string) ([]models.ContentEntry, error)
	FetchText(ctx context.Context, locator string) (string, error)
	Budget() *contents.Budget
}

// Crawler fills a manifest from the remote repository, one budget-limited
// run at a time.
type Crawler struct {
	client Lister
	cfg    models.GeneratorConfig
	logger *slog.Logger
}

func NewCrawler(client Lister, cfg models.GeneratorConfig, logger *slog.Logger) *Crawler {
	return &Crawler{client: client, cfg: cfg, logger: logger}
}

// Run advances m as far as the call budget allows. Remote failures are
// logged and treated as empty results; Run itself never fails.
func (c *Crawler) Run(ctx context.Context, m *models.Manifest) {
	m.Normalize()

	for _, name := range c.cfg.Galleries {
		c.fillGallery(ctx, m, name)
	}

	if !c.canCall(ctx) {
		return
	}
	c.logger.Info("Processing interests")

	if m.ProcessingStatus.TotalFolders == 0 {
		c.discoverInterests(ctx, m)
	}
	c.processRemaining(ctx, m)
}

func (c *Crawler) canCall(ctx context.Context) bool {
	return ctx.Err() == nil && c.client.Budget().Remaining()
}

// fillGallery lists images/<name> once; a non-empty gallery is left alone.
func (c *Crawler) fillGallery(ctx context.Context, m *models.Manifest, name string) {
	current, ok := m.Images.Gallery(name)
	if !ok {
		c.logger.Warn("Unknown gallery, skipping", "gallery", name)
		return
	}
	if len(current) > 0 || !c.canCall(ctx) {
		return
	}

	c.logger.Info("Processing gallery", "gallery", name)
	entries, err := c.client.ListDir(ctx, path.Join("images", name))
	if err != nil {
		c.logFailure("gallery listing failed", err, "gallery", name)
		return
	}

	images := media.GalleryImages(entries)
	m.Images.SetGallery(name, images)
	c.logger.Info("Gallery listed", "gallery", name, "images", len(images))
}

// discoverInterests lists the interests directory and enqueues every folder
// not already present in the manifest, in listing order.
func (c *Crawler) discoverInterests(ctx context.Context, m *models.Manifest) {
	entries, err := c.client.ListDir(ctx, c.cfg.InterestsDir)
	if err != nil {
		c.logFailure("interests listing failed", err, "path", c.cfg.InterestsDir)
		return
	}

	all := media.Dirs(entries)
	known := m.Images.KnownInterests()

	remaining := []string{}
	processed := 0
	for _, folder := range all {
		if _, done := known[folder]; done {
			processed++
			continue
		}
		remaining = append(remaining, folder)
	}

	status := m.ProcessingStatus
	status.TotalFolders = len(all)
	status.ProcessedFolders = processed
	status.RemainingFolders = remaining

	c.logger.Info("Interest folders discovered",
		"total", len(all), "already_processed", processed, "remaining", len(remaining))
}

// processRemaining works through the pending folders until none are left or
// the budget runs out. A folder whose listing fails stays pending.
func (c *Crawler) processRemaining(ctx context.Context, m *models.Manifest) {
	status := m.ProcessingStatus
	pending := append([]string{}, status.RemainingFolders...)

	for _, folder := range pending {
		if _, done := m.Images.Interests[folder]; done {
			status.Remove(folder)
			continue
		}
		if !c.canCall(ctx) {
			break
		}

		c.logger.Info("Processing interest folder", "folder", folder)
		entries, err := c.client.ListDir(ctx, path.Join(c.cfg.InterestsDir, folder))
		if err != nil {
			c.logFailure("interest folder listing failed", err, "folder", folder)
			continue
		}

		m.Images.Interests[folder] = c.buildEntry(ctx, folder, entries)
		status.Remove(folder)
		c.logger.Info("Interest folder complete", "folder", folder,
			"processed", status.ProcessedFolders, "total", status.TotalFolders)
	}
}

func (c *Crawler) buildEntry(ctx context.Context, folder string, entries []models.ContentEntry) models.InterestEntry {
	var entry models.InterestEntry

	if img, ok := media.FirstImage(entries); ok {
		entry.Image = img.Name
		c.logger.Info("Interest image", "folder", folder, "image", img.Name)
	}

	txt, ok := media.FirstTextResource(entries)
	if !ok || txt.DownloadURL == "" || !c.canCall(ctx) {
		return entry
	}
	text, err := c.client.FetchText(ctx, txt.DownloadURL)
	if err != nil {
		c.logFailure("interest text fetch failed", err, "folder", folder)
		return entry
	}
	if text != "" {
		entry.Text = text
		c.logger.Info("Interest text", "folder", folder, "text", truncate(text, 50))
	}
	return entry
}

func (c *Crawler) logFailure(msg string, err error, args ...any) {
	if errors.Is(err, contents.ErrBudgetExhausted) {
		return // already reported by the client
	}
	var ne *fetcher.NetworkError
	if errors.As(err, &ne) {
		args = append(args, "timeout", ne.Timeout())
	}
	c.logger.Error(msg, append(args, "error", err)...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
