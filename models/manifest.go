package models

// Manifest is the root document persisted to site-manifest.json.
type Manifest struct {
	Images           Images            `json:"images"`
	LastUpdated      string            `json:"last_updated"`
	ProcessingStatus *ProcessingStatus `json:"processing_status,omitempty"` // nil once the crawl is complete
}

// Images holds the fixed galleries plus the open-ended interests collection.
type Images struct {
	Recent    []string                 `json:"recent"`
	Life      []string                 `json:"life"`
	Art       []string                 `json:"art"`
	Interests map[string]InterestEntry `json:"interests"`
}

// InterestEntry is the content extracted from one interest folder.
// Both fields are optional; a folder with neither yields {}.
type InterestEntry struct {
	Image string `json:"image,omitempty"`
	Text  string `json:"text,omitempty"`
}

// ProcessingStatus is the checkpoint of the interests crawl.
// Once TotalFolders is known, ProcessedFolders+len(RemainingFolders) == TotalFolders.
type ProcessingStatus struct {
	TotalFolders     int      `json:"total_folders"`
	ProcessedFolders int      `json:"processed_folders"`
	RemainingFolders []string `json:"remaining_folders"`
}

// NewManifest returns an empty manifest with an uninitialized checkpoint.
func NewManifest(today string) *Manifest {
	m := &Manifest{LastUpdated: today}
	m.Normalize()
	return m
}

// Normalize replaces nil collections with empty ones so the document always
// serializes with [] and {} rather than null, and ensures a checkpoint exists.
func (m *Manifest) Normalize() {
	if m.Images.Recent == nil {
		m.Images.Recent = []string{}
	}
	if m.Images.Life == nil {
		m.Images.Life = []string{}
	}
	if m.Images.Art == nil {
		m.Images.Art = []string{}
	}
	if m.Images.Interests == nil {
		m.Images.Interests = map[string]InterestEntry{}
	}
	if m.ProcessingStatus == nil {
		m.ProcessingStatus = &ProcessingStatus{}
	}
	if m.ProcessingStatus.RemainingFolders == nil {
		m.ProcessingStatus.RemainingFolders = []string{}
	}
}

// Gallery returns the gallery slice for name, or nil and false for an unknown name.
func (img *Images) Gallery(name string) ([]string, bool) {
	switch name {
	case GalleryRecent:
		return img.Recent, true
	case GalleryLife:
		return img.Life, true
	case GalleryArt:
		return img.Art, true
	}
	return nil, false
}

// SetGallery replaces the named gallery. Unknown names are ignored.
func (img *Images) SetGallery(name string, files []string) {
	switch name {
	case GalleryRecent:
		img.Recent = files
	case GalleryLife:
		img.Life = files
	case GalleryArt:
		img.Art = files
	}
}

// KnownInterests returns the set of interest keys already present.
func (img *Images) KnownInterests() map[string]struct{} {
	known := make(map[string]struct{}, len(img.Interests))
	for k := range img.Interests {
		known[k] = struct{}{}
	}
	return known
}

// Complete reports whether the crawl has nothing left to process.
func (s *ProcessingStatus) Complete() bool {
	return s == nil || len(s.RemainingFolders) == 0
}

// Remove drops folder from RemainingFolders and counts it as processed.
// It reports false if the folder was not pending.
func (s *ProcessingStatus) Remove(folder string) bool {
	for i, f := range s.RemainingFolders {
		if f == folder {
			s.RemainingFolders = append(s.RemainingFolders[:i], s.RemainingFolders[i+1:]...)
			s.ProcessedFolders++
			return true
		}
	}
	return false
}
