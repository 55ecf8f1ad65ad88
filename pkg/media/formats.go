// Package media classifies remote filenames into images and text resources.
package media

import (
	"path"
	"strings"

	"github.com/megachile/datingdoc-manifest/models"
)

// Image extensions accepted in galleries and interest folders.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Text resource names looked up in interest folders.
var textResourceNames = map[string]struct{}{
	"text.html": {},
	"text.txt":  {},
}

// IsImageFile checks if a filename has a supported image extension (case-insensitive).
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

// IsTextResource checks if a filename is one of the interest text resources.
func IsTextResource(name string) bool {
	_, ok := textResourceNames[name]
	return ok
}

// GalleryImages returns the names of file entries with an image extension,
// in listing order.
func GalleryImages(entries []models.ContentEntry) []string {
	images := []string{}
	for _, e := range entries {
		if e.Type == models.EntryFile && IsImageFile(e.Name) {
			images = append(images, e.Name)
		}
	}
	return images
}

// FirstImage returns the first entry whose name has an image extension.
func FirstImage(entries []models.ContentEntry) (models.ContentEntry, bool) {
	for _, e := range entries {
		if IsImageFile(e.Name) {
			return e, true
		}
	}
	return models.ContentEntry{}, false
}

// FirstTextResource returns the first text.html or text.txt entry.
func FirstTextResource(entries []models.ContentEntry) (models.ContentEntry, bool) {
	for _, e := range entries {
		if IsTextResource(e.Name) {
			return e, true
		}
	}
	return models.ContentEntry{}, false
}

// Dirs returns the names of directory entries, in listing order.
func Dirs(entries []models.ContentEntry) []string {
	dirs := []string{}
	for _, e := range entries {
		if e.Type == models.EntryDir {
			dirs = append(dirs, e.Name)
		}
	}
	return dirs
}
