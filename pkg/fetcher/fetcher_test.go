package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`[{"name":"a.jpg","type":"file"}]`))
		case "/bad-json":
			_, _ = w.Write([]byte(`{not json`))
		case "/missing":
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher("manifest-generator", time.Second)

	tests := []struct {
		name      string
		path      string
		wantParse bool
		wantCode  int
	}{
		{name: "valid listing", path: "/ok"},
		{name: "malformed body", path: "/bad-json", wantParse: true},
		{name: "not found", path: "/missing", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []map[string]string
			err := f.GetJSON(context.Background(), srv.URL+tt.path, &out)

			var pe *ParseError
			if got := errors.As(err, &pe); got != tt.wantParse {
				t.Errorf("ParseError = %v, want %v (err=%v)", got, tt.wantParse, err)
			}

			var se *StatusError
			if tt.wantCode != 0 {
				if !errors.As(err, &se) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				if se.StatusCode != tt.wantCode {
					t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.wantCode)
				}
			}

			if !tt.wantParse && tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("GetJSON() error = %v", err)
				}
				if len(out) != 1 || out[0]["name"] != "a.jpg" {
					t.Errorf("GetJSON() decoded %v", out)
				}
			}
		})
	}

	if gotUA != "manifest-generator" {
		t.Errorf("User-Agent = %q, want manifest-generator", gotUA)
	}
}

func TestGetBytesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewFetcher("manifest-generator", 20*time.Millisecond)
	_, err := f.GetBytes(context.Background(), srv.URL)

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !ne.Timeout() {
		t.Errorf("Timeout() = false for %v", ne)
	}
}
