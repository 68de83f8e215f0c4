package media

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

// Downloader fetches a candidate's audio into destDir and returns the raw file path.
type Downloader interface {
	Download(candidate models.Candidate, destDir string) (string, error)
}

// Tagger writes req.Track's metadata into req.DestPath and consumes req.RawPath.
type Tagger interface {
	Tag(req TagRequest) (string, error)
}

// TagRequest describes one tagging operation.
type TagRequest struct {
	RawPath  string
	DestPath string
	Track    models.Track
	// CoverURL is optional; an empty value skips cover embedding.
	CoverURL string
}

// CollectionDir returns the directory a collection's files are written to.
//
// A single track goes straight into root; every other collection gets a sanitized subdirectory.
// Names that would not stay inside root ("", ".", "..") fall back to the collection kind.
func CollectionDir(root string, c models.Collection) string {
	if c.Single() {
		return root
	}

	name := shared.SanitizeFileName(c.Name)
	switch strings.TrimSpace(name) {
	case "", ".", "..":
		name = c.Kind.String()
	}
	return filepath.Join(root, name)
}

// OutputPath returns "{dir}/{sanitized title}.mp3".
func OutputPath(dir string, track models.Track) string {
	return filepath.Join(dir, shared.SanitizeFileName(track.Name)+".mp3")
}

// LookupTool resolves a binary from an explicit configured path or PATH.
func LookupTool(configured, name string) (string, error) {
	target := configured
	if target == "" {
		target = name
	}

	path, err := exec.LookPath(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s (%v)", shared.ErrToolNotFound, name, err)
	}
	return path, nil
}
