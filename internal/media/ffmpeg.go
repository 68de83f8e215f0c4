package media

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

// FFmpegTagger re-encodes the raw audio to MP3 with ffmpeg, writing tags and an attached cover picture.
type FFmpegTagger struct {
	path   string
	logger *log.Logger
}

// NewFFmpegTagger creates a [Tagger] backed by the ffmpeg binary at path.
func NewFFmpegTagger(path string, logger *log.Logger) *FFmpegTagger {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &FFmpegTagger{path: path, logger: logger}
}

// Args returns the ffmpeg argument list for req.
//
// Without a cover URL the second input and its stream mapping are omitted.
func (f *FFmpegTagger) Args(req TagRequest) []string {
	args := []string{"-i", req.RawPath}
	if req.CoverURL != "" {
		args = append(args, "-i", req.CoverURL)
	}

	for _, kv := range tagPairs(req.Track) {
		args = append(args, "-metadata", kv[0]+"="+kv[1])
	}

	if req.CoverURL != "" {
		args = append(args, "-map", "0:a", "-map", "1", "-c:v", "mjpeg", "-q:v", "2")
	} else {
		args = append(args, "-map", "0:a")
	}
	args = append(args, "-c:a", "libmp3lame", "-q:a", "4", "-id3v2_version", "3")
	if req.CoverURL != "" {
		args = append(args, "-metadata:s:v", "title=Album cover", "-metadata:s:v", "comment=Cover (front)")
	}
	return append(args, "-y", req.DestPath)
}

// Tag implements [Tagger].
func (f *FFmpegTagger) Tag(req TagRequest) (string, error) {
	if err := os.MkdirAll(filepath.Dir(req.DestPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTaggingFailed, err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(f.path, f.Args(req)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: ffmpeg %s: %v\n%s", shared.ErrTaggingFailed, req.RawPath, err, strings.TrimSpace(stderr.String()))
	}

	removeRaw(f.logger, req)
	return req.DestPath, nil
}

// tagPairs lists the key/value metadata written to the output, in a stable order.
func tagPairs(t models.Track) [][2]string {
	pairs := [][2]string{
		{"title", t.Name},
		{"artist", strings.Join(t.ArtistNames(), "; ")},
		{"album_artist", strings.Join(t.Album.ArtistNames(), "; ")},
		{"album", t.Album.Name},
	}
	if n := trackNumber(t); n != "" {
		pairs = append(pairs, [2]string{"track", n})
	}
	return append(pairs, [2]string{"date", t.Album.ReleaseDate})
}

// trackNumber renders "N/M", "N" or "" depending on what is known.
func trackNumber(t models.Track) string {
	switch {
	case t.TrackNumber <= 0:
		return ""
	case t.TotalTracks > 0:
		return strconv.Itoa(t.TrackNumber) + "/" + strconv.Itoa(t.TotalTracks)
	default:
		return strconv.Itoa(t.TrackNumber)
	}
}

// removeRaw deletes the intermediate file once the output exists. Failure is only logged.
func removeRaw(logger *log.Logger, req TagRequest) {
	if req.RawPath == req.DestPath {
		return
	}
	if err := os.Remove(req.RawPath); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove intermediate file", "path", req.RawPath, "error", err)
	}
}
