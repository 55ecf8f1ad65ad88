// Package models defines data structures for configuration and the site manifest.
package models

import "time"

// GeneratorConfig holds the parameters of a manifest generation run.
// All values are compile-time constants, see DefaultConfig.
type GeneratorConfig struct {
	Owner        string
	Repo         string
	APIBase      string
	ManifestPath string
	UserAgent    string
	CallBudget   int
	Delay        time.Duration
	Timeout      time.Duration

	// Galleries are fetched from images/<name> and stored under the same key.
	Galleries    []string
	InterestsDir string
}

const (
	DefaultOwner        = "Megachile"
	DefaultRepo         = "datingdoc"
	DefaultAPIBase      = "https://api.github.com"
	DefaultManifestPath = "site-manifest.json"
	DefaultUserAgent    = "manifest-generator"
	DefaultCallBudget   = 55 // leaves some buffer under the unauthenticated hourly limit
	DefaultDelay        = 500 * time.Millisecond
	DefaultTimeout      = 10 * time.Second
	DefaultInterestsDir = "images/interests_new"
)

// Gallery names.
const (
	GalleryRecent = "recent"
	GalleryLife   = "life"
	GalleryArt    = "art"
)

func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Owner:        DefaultOwner,
		Repo:         DefaultRepo,
		APIBase:      DefaultAPIBase,
		ManifestPath: DefaultManifestPath,
		UserAgent:    DefaultUserAgent,
		CallBudget:   DefaultCallBudget,
		Delay:        DefaultDelay,
		Timeout:      DefaultTimeout,
		Galleries:    []string{GalleryRecent, GalleryLife, GalleryArt},
		InterestsDir: DefaultInterestsDir,
	}
}
