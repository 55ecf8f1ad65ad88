// Package fakeapi serves an in-memory repository over the contents API shape
// for tests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/megachile/datingdoc-manifest/models"
)

// Server is an httptest server backed by a map of directory listings and
// raw file bodies.
type Server struct {
	*httptest.Server

	Owner string
	Repo  string

	mu       sync.Mutex
	dirs     map[string][]models.ContentEntry
	raw      map[string]string
	statuses map[string]int
	requests []string
}

func New(owner, repo string) *Server {
	s := &Server{
		Owner:    owner,
		Repo:     repo,
		dirs:     map[string][]models.ContentEntry{},
		raw:      map[string]string{},
		statuses: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// AddFile registers a file under dir. When body is non-empty the file is
// downloadable at its download_url.
func (s *Server) AddFile(dir, name, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := join(dir, name)
	entry := models.ContentEntry{Name: name, Path: p, Type: models.EntryFile}
	if body != "" {
		entry.DownloadURL = s.URL + "/raw/" + p
		s.raw[p] = body
	}
	s.dirs[dir] = append(s.dirs[dir], entry)
}

// AddDir registers an (initially empty) directory under parent.
func (s *Server) AddDir(parent, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := join(parent, name)
	s.dirs[parent] = append(s.dirs[parent], models.ContentEntry{Name: name, Path: p, Type: models.EntryDir})
	if _, ok := s.dirs[p]; !ok {
		s.dirs[p] = []models.ContentEntry{}
	}
}

// FailPath makes listings of path answer with status. A zero status clears it.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.statuses, path)
		return
	}
	s.statuses[path] = status
}

// Requests returns the request paths served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.URL.Path)

	if rest, ok := strings.CutPrefix(r.URL.Path, "/raw/"); ok {
		body, found := s.raw[rest]
		if !found {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
		return
	}

	prefix := "/repos/" + s.Owner + "/" + s.Repo + "/contents/"
	dir, ok := strings.CutPrefix(r.URL.Path, prefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if status, failing := s.statuses[dir]; failing {
		http.Error(w, http.StatusText(status), status)
		return
	}
	entries, found := s.dirs[dir]
	if !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
