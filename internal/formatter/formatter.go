// package formatter renders batch summaries, history and search results as text, JSON, CSV, M3U and tables.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/olekukonko/tablewriter"
)

// FormatDuration renders milliseconds as "m:ss", or "h:mm:ss" from one hour up.
func FormatDuration(ms uint64) string {
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// WriteSummary prints one line per job followed by the success and failure counts.
func WriteSummary(w io.Writer, s *models.Summary) error {
	total := s.Total()
	for _, r := range s.Results {
		var line string
		if r.OK() {
			line = fmt.Sprintf("✓ [%d/%d] %s -> %s", r.Index+1, total, r.Track.DisplayName(), r.OutputPath)
		} else {
			line = fmt.Sprintf("✗ [%d/%d] %s (%s): %s", r.Index+1, total, r.Track.DisplayName(), r.FailedAt, r.Error)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if s.PlaylistPath != "" {
		if _, err := fmt.Fprintf(w, "Playlist written to %s\n", s.PlaylistPath); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s: %d succeeded, %d failed\n", s.Collection, s.Succeeded, s.Failed)
	return err
}

// ToManifestJSON encodes the summary as an indented JSON manifest.
func ToManifestJSON(s *models.Summary) ([]byte, error) {
	return shared.MarshalJSON(s, true)
}

// ExportToCSV converts a summary to CSV with columns: Index, Title, Artists, Album, Duration, State, Output, Error
func ExportToCSV(s *models.Summary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Title", "Artists", "Album", "Duration", "State", "Output", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range s.Results {
		record := []string{
			strconv.Itoa(r.Index + 1),
			r.Track.Name,
			strings.Join(r.Track.ArtistNames(), ", "),
			r.Track.Album.Name,
			FormatDuration(r.Track.DurationMS),
			r.State.String(),
			r.OutputPath,
			r.Error,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSVReport writes [ExportToCSV] output to path.
func WriteCSVReport(s *models.Summary, path string) error {
	data, err := ExportToCSV(s)
	if err != nil {
		return fmt.Errorf("failed to generate CSV: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// ExportToM3U builds an extended M3U playlist of the successful outputs in collection order.
//
// Entry paths are made relative to dir when possible.
func ExportToM3U(s *models.Summary, dir string) []byte {
	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")

	for _, r := range s.Results {
		if !r.OK() {
			continue
		}
		path := r.OutputPath
		if rel, err := filepath.Rel(dir, path); err == nil {
			path = rel
		}
		fmt.Fprintf(&buf, "#EXTINF:%d,%s\n%s\n", r.Track.DurationMS/1000, r.Track.DisplayName(), filepath.ToSlash(path))
	}
	return buf.Bytes()
}

// WriteM3U writes the playlist for s into dir as "{collection}.m3u" and returns its path.
func WriteM3U(s *models.Summary, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, shared.SanitizeFileName(s.Collection)+".m3u")
	if err := os.WriteFile(path, ExportToM3U(s, dir), 0o644); err != nil {
		return "", fmt.Errorf("failed to write playlist: %w", err)
	}
	return path, nil
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// WriteCandidates renders ranked search results as a table.
func WriteCandidates(w io.Writer, candidates []models.Candidate) {
	table := newTable(w, []string{"#", "Title", "Duration", "URL"})
	for i, c := range candidates {
		table.Append([]string{strconv.Itoa(i + 1), c.Title, FormatDuration(c.DurationMS), c.SourceURL()})
	}
	table.Render()
}

// WriteBatches renders download history batches, newest first.
func WriteBatches(w io.Writer, batches []*models.Batch) {
	table := newTable(w, []string{"ID", "Started", "Kind", "Name", "Total", "OK", "Failed"})
	for _, b := range batches {
		table.Append([]string{
			b.ID,
			b.StartedAt.Local().Format(time.DateTime),
			b.Kind,
			b.Name,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Succeeded),
			strconv.Itoa(b.Failed),
		})
	}
	table.Render()
}

// WriteDownloads renders the per-track rows of one batch.
func WriteDownloads(w io.Writer, downloads []*models.Download) {
	table := newTable(w, []string{"Track", "Artists", "State", "Output", "Error"})
	for _, d := range downloads {
		table.Append([]string{d.Track, d.Artists, d.State, d.OutputPath, d.Error})
	}
	table.Render()
}

// WriteFields renders label/value pairs as a two column table.
func WriteFields(w io.Writer, fields [][2]string) {
	table := newTable(w, []string{"Field", "Value"})
	for _, f := range fields {
		table.Append([]string{f[0], f[1]})
	}
	table.Render()
}
