package media

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

const defaultAudioFormat = "opus"

// YTDLP runs the yt-dlp binary.
type YTDLP struct {
	path   string
	format string
	logger *log.Logger
}

// NewYTDLP creates a [Downloader] backed by the binary at path extracting audio as format.
func NewYTDLP(path, format string, logger *log.Logger) *YTDLP {
	if format == "" {
		format = defaultAudioFormat
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &YTDLP{path: path, format: format, logger: logger}
}

// Args returns the yt-dlp argument list for candidate.
func (y *YTDLP) Args(candidate models.Candidate, destDir string) []string {
	template := "%(id)s.%(ext)s"
	if destDir != "" {
		template = filepath.Join(destDir, template)
	}
	return []string{"-x", candidate.SourceURL(), "--audio-format", y.format, "-o", template}
}

// Download implements [Downloader].
//
// The returned path is the last "Destination:" yt-dlp reports, falling back to "{destDir}/{id}.{format}".
func (y *YTDLP) Download(candidate models.Candidate, destDir string) (string, error) {
	args := y.Args(candidate, destDir)
	y.logger.Debug("running yt-dlp", "args", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(y.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: yt-dlp %s: %v\n%s", shared.ErrAcquisitionFailed, candidate.SourceURL(), err, strings.TrimSpace(stderr.String()))
	}

	if dest := lastDestination(stdout.String()); dest != "" {
		return dest, nil
	}
	return filepath.Join(destDir, candidate.ID+"."+y.format), nil
}

// lastDestination returns the path from the final "Destination: " line, which is the
// post-extraction file when yt-dlp converts audio.
func lastDestination(output string) string {
	const marker = "Destination: "

	var dest string
	for _, line := range strings.Split(output, "\n") {
		if _, after, ok := strings.Cut(line, marker); ok {
			dest = strings.TrimSpace(after)
		}
	}
	return dest
}
