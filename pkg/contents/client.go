// Package contents is a client for the repository contents API: directory
// listings and raw file downloads, bounded by a per-run call budget.
package contents

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/extractor"
	"github.com/megachile/datingdoc-manifest/pkg/fetcher"
	"golang.org/x/time/rate"
)

// Client issues strictly sequential requests, each one charged to the budget.
// After a successful call the next request waits a full delay.
type Client struct {
	fetcher *fetcher.Fetcher
	budget  *Budget
	pacer   *rate.Limiter
	logger  *slog.Logger
	baseURL string
}

func NewClient(cfg models.GeneratorConfig, logger *slog.Logger) *Client {
	pacer := rate.NewLimiter(rate.Inf, 1)
	if cfg.Delay > 0 {
		pacer = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return &Client{
		fetcher: fetcher.NewFetcher(cfg.UserAgent, cfg.Timeout),
		budget:  NewBudget(cfg.CallBudget),
		pacer:   pacer,
		logger:  logger,
		baseURL: fmt.Sprintf("%s/repos/%s/%s/contents",
			strings.TrimRight(cfg.APIBase, "/"), url.PathEscape(cfg.Owner), url.PathEscape(cfg.Repo)),
	}
}

func (c *Client) Budget() *Budget {
	return c.budget
}

// ListDir returns the entries of the directory at path.
func (c *Client) ListDir(ctx context.Context, path string) ([]models.ContentEntry, error) {
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	c.logger.Info("API call", "call", c.budget.Used(), "budget", c.budget.Limit(), "path", path)

	var entries []models.ContentEntry
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/"+escapePath(path), &entries); err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", path, err)
	}
	c.settle()
	return entries, nil
}

// FetchText downloads the text resource at locator and reduces it to a snippet.
func (c *Client) FetchText(ctx context.Context, locator string) (string, error) {
	if err := c.begin(ctx); err != nil {
		return "", err
	}
	c.logger.Info("Fetching text content", "call", c.budget.Used(), "budget", c.budget.Limit())

	body, err := c.fetcher.GetBytes(ctx, locator)
	if err != nil {
		return "", fmt.Errorf("error fetching text content: %w", err)
	}
	c.settle()
	return extractor.Snippet(string(body)), nil
}

// begin charges one call to the budget and waits for the pacer.
func (c *Client) begin(ctx context.Context) error {
	if !c.budget.Take() {
		c.logger.Warn("Reached call budget, stopping here; wait an hour and run again to continue",
			"budget", c.budget.Limit())
		return ErrBudgetExhausted
	}
	if err := c.pacer.Wait(ctx); err != nil {
		return fmt.Errorf("waiting to call API: %w", err)
	}
	return nil
}

// settle reserves the pacer's next token at call completion, so the
// following Wait blocks for a full delay from now.
func (c *Client) settle() {
	c.pacer.Reserve()
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
