// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/spotydw/internal/media"
	"github.com/desertthunder/spotydw/internal/models"
)

// MinimalMP3 is a single MPEG-1 Layer III frame header followed by silence padding.
var MinimalMP3 = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)

// MinimalJPEG is a JPEG SOI/APP0 prefix, enough for content sniffing.
var MinimalJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00}

// FakeResolver returns a fixed collection or error for every reference.
type FakeResolver struct {
	Collection *models.Collection
	Err        error
	Calls      int
}

func (f *FakeResolver) Resolve(ctx context.Context, ref models.CatalogReference) (*models.Collection, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Collection, nil
}

// FakeSearcher serves candidates keyed by query. Unknown queries return an empty list.
type FakeSearcher struct {
	mu      sync.Mutex
	Results map[string][]models.Candidate
	Errors  map[string]error
	Queries []string
}

func (f *FakeSearcher) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Queries = append(f.Queries, query)
	if err := f.Errors[query]; err != nil {
		return nil, err
	}
	return f.Results[query], nil
}

// SearchCount returns how many searches were issued.
func (f *FakeSearcher) SearchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Queries)
}

// FakeDownloader writes [MinimalMP3] to "{destDir}/{id}.mp3" instead of spawning a downloader.
//
// Candidate IDs listed in Fail produce the mapped error. A listed ID mapped to nil panics.
type FakeDownloader struct {
	mu         sync.Mutex
	Fail       map[string]error
	Downloaded []string
}

func (f *FakeDownloader) Download(candidate models.Candidate, destDir string) (string, error) {
	if err, ok := f.Fail[candidate.ID]; ok {
		if err == nil {
			panic(fmt.Sprintf("download of %s exploded", candidate.ID))
		}
		return "", err
	}

	if destDir != "" {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", err
		}
	}
	path := filepath.Join(destDir, candidate.ID+".mp3")
	if err := os.WriteFile(path, MinimalMP3, 0o644); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.Downloaded = append(f.Downloaded, candidate.ID)
	f.mu.Unlock()
	return path, nil
}

// FakeTagger renames the raw file to the destination without touching its contents.
type FakeTagger struct {
	Err error
}

func (f *FakeTagger) Tag(req media.TagRequest) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if err := os.MkdirAll(filepath.Dir(req.DestPath), 0o755); err != nil {
		return "", err
	}
	if err := os.Rename(req.RawPath, req.DestPath); err != nil {
		return "", err
	}
	return req.DestPath, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File should not exist: %s (stat err: %v)", path, err)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
