package models

// Entry types returned by the contents listing.
const (
	EntryFile = "file"
	EntryDir  = "dir"
)

// ContentEntry is one item of a remote directory listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url,omitempty"` // set for files only
}
