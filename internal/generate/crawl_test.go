package generate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/megachile/datingdoc-manifest/models"
	"github.com/megachile/datingdoc-manifest/pkg/contents"
	"github.com/megachile/datingdoc-manifest/pkg/fetcher"
)

// stubLister answers from fixed listings and charges every call to its budget.
type stubLister struct {
	budget   *contents.Budget
	listings map[string][]models.ContentEntry
	texts    map[string]string
	failures map[string]error
	calls    []string
}

func (s *stubLister) ListDir(_ context.Context, path string) ([]models.ContentEntry, error) {
	if !s.budget.Take() {
		return nil, contents.ErrBudgetExhausted
	}
	s.calls = append(s.calls, path)
	if err, failing := s.failures[path]; failing {
		return nil, err
	}
	entries, ok := s.listings[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return entries, nil
}

func (s *stubLister) FetchText(_ context.Context, locator string) (string, error) {
	if !s.budget.Take() {
		return "", contents.ErrBudgetExhausted
	}
	s.calls = append(s.calls, locator)
	return s.texts[locator], nil
}

func (s *stubLister) Budget() *contents.Budget { return s.budget }

func crawlConfig() models.GeneratorConfig {
	cfg := models.DefaultConfig()
	cfg.Galleries = nil
	return cfg
}

func TestKnownPendingFolderIsNotRefetched(t *testing.T) {
	lister := &stubLister{budget: contents.NewBudget(10)}

	m := models.NewManifest("2026-10-17")
	m.Images.Interests["a"] = models.InterestEntry{Image: "kept.jpg"}
	m.ProcessingStatus = &models.ProcessingStatus{TotalFolders: 2, ProcessedFolders: 0, RemainingFolders: []string{"a", "b"}}
	lister.listings = map[string][]models.ContentEntry{
		interestsDir + "/b": {{Name: "b.jpg", Type: models.EntryFile}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewCrawler(lister, crawlConfig(), logger).Run(context.Background(), m)

	if diff := cmp.Diff([]string{interestsDir + "/b"}, lister.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if m.Images.Interests["a"].Image != "kept.jpg" {
		t.Error("known entry was overwritten")
	}
	want := &models.ProcessingStatus{TotalFolders: 2, ProcessedFolders: 2, RemainingFolders: []string{}}
	if diff := cmp.Diff(want, m.ProcessingStatus); diff != "" {
		t.Errorf("processing_status mismatch (-want +got):\n%s", diff)
	}
}

func TestTextSkippedWhenBudgetRunsOut(t *testing.T) {
	// discovery + one folder listing; no call left for the text.
	lister := &stubLister{
		budget: contents.NewBudget(2),
		listings: map[string][]models.ContentEntry{
			interestsDir: {{Name: "a", Type: models.EntryDir}, {Name: "stray.jpg", Type: models.EntryFile}},
			interestsDir + "/a": {
				{Name: "text.html", Type: models.EntryFile, DownloadURL: "raw/a/text.html"},
				{Name: "a.jpg", Type: models.EntryFile},
			},
		},
		texts: map[string]string{"raw/a/text.html": "hello"},
	}

	m := models.NewManifest("2026-10-17")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewCrawler(lister, crawlConfig(), logger).Run(context.Background(), m)

	if diff := cmp.Diff(models.InterestEntry{Image: "a.jpg"}, m.Images.Interests["a"]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
	if m.ProcessingStatus.TotalFolders != 1 || !m.ProcessingStatus.Complete() {
		t.Errorf("processing_status = %+v", m.ProcessingStatus)
	}
}

func TestCancelledContextStopsCrawl(t *testing.T) {
	lister := &stubLister{budget: contents.NewBudget(10)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := models.NewManifest("2026-10-17")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewCrawler(lister, models.DefaultConfig(), logger).Run(ctx, m)

	if len(lister.calls) != 0 {
		t.Errorf("calls = %v, want none", lister.calls)
	}
}

func TestTimeoutIsFlaggedInFailureLog(t *testing.T) {
	lister := &stubLister{
		budget: contents.NewBudget(5),
		failures: map[string]error{
			"images/recent": &fetcher.NetworkError{URL: "https://api.example/recent", Err: context.DeadlineExceeded},
			"images/life":   &fetcher.StatusError{URL: "https://api.example/life", StatusCode: 403, Status: "403 Forbidden"},
		},
	}
	cfg := crawlConfig()
	cfg.Galleries = []string{models.GalleryRecent, models.GalleryLife}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := models.NewManifest("2026-10-17")
	NewCrawler(lister, cfg, logger).Run(context.Background(), m)

	var recentLine, lifeLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.Contains(line, `"gallery":"recent"`) && strings.Contains(line, "listing failed"):
			recentLine = line
		case strings.Contains(line, `"gallery":"life"`) && strings.Contains(line, "listing failed"):
			lifeLine = line
		}
	}
	if !strings.Contains(recentLine, `"timeout":true`) {
		t.Errorf("recent failure not flagged as timeout: %q", recentLine)
	}
	if lifeLine == "" || strings.Contains(lifeLine, `"timeout"`) {
		t.Errorf("life failure log = %q, want a line without timeout", lifeLine)
	}
	if len(m.Images.Recent) != 0 || len(m.Images.Life) != 0 {
		t.Errorf("failed galleries were filled: %v %v", m.Images.Recent, m.Images.Life)
	}
}
