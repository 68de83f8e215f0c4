// package shared defines helpers used across the downloader: logging, config, errors and storage.
package shared

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// NewFileLogger creates a [log.Logger] that writes to w and to a size-rotated file described by lc.
//
// When lc.File is empty the result is equivalent to [NewLogger].
func NewFileLogger(w io.Writer, lc LogConfig) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	var logger *log.Logger
	if lc.File == "" {
		logger = NewLogger(w)
	} else {
		rotating := &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSize,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAge,
		}
		logger = NewLogger(io.MultiWriter(w, rotating))
	}

	SetLogLevel(logger, ParseLevel(lc.Level))
	return logger
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// ParseLevel maps a config level name to a [log.Level], falling back to [log.InfoLevel].
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

var unsafeFileChars = strings.NewReplacer(
	"<", " ", ">", " ", ":", " ", `"`, " ", "/", " ",
	`\`, " ", "|", " ", "?", " ", "*", " ",
)

// SanitizeFileName replaces characters that are not allowed in file names on common filesystems with a space.
func SanitizeFileName(name string) string {
	return unsafeFileChars.Replace(name)
}

// MarshalJSON encodes v as JSON, indented with two spaces when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
