package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bogem/id3v2"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/shared"
)

// ID3Tagger writes ID3v2.4 frames straight into MP3 output without spawning ffmpeg.
//
// The raw file must already be MP3, i.e. downloaded with audio_format "mp3".
type ID3Tagger struct {
	httpClient *http.Client
	logger     *log.Logger
}

// NewID3Tagger creates a native [Tagger]. A nil client gets a 30 second timeout client for cover art.
func NewID3Tagger(client *http.Client, logger *log.Logger) *ID3Tagger {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ID3Tagger{httpClient: client, logger: logger}
}

// Tag implements [Tagger]. The output is staged next to DestPath and renamed into place.
func (t *ID3Tagger) Tag(req TagRequest) (string, error) {
	var cover []byte
	var mime string
	if req.CoverURL != "" {
		data, m, err := FetchCover(t.httpClient, req.CoverURL)
		if err != nil {
			t.logger.Warn("skipping cover art", "track", req.Track.Name, "error", err)
		} else {
			cover, mime = data, m
		}
	}

	if err := os.MkdirAll(filepath.Dir(req.DestPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTaggingFailed, err)
	}

	staged := req.DestPath + ".part"
	if err := copyFile(req.RawPath, staged); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("%w: %v", shared.ErrTaggingFailed, err)
	}

	if err := writeFrames(staged, req, cover, mime); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("%w: %s: %v", shared.ErrTaggingFailed, req.RawPath, err)
	}

	if err := os.Rename(staged, req.DestPath); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("%w: %v", shared.ErrTaggingFailed, err)
	}

	removeRaw(t.logger, req)
	return req.DestPath, nil
}

func writeFrames(path string, req TagRequest, cover []byte, mime string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	for _, kv := range tagPairs(req.Track) {
		switch kv[0] {
		case "title":
			tag.SetTitle(kv[1])
		case "artist":
			tag.SetArtist(kv[1])
		case "album_artist":
			tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, kv[1])
		case "album":
			tag.SetAlbum(kv[1])
		case "track":
			tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, kv[1])
		case "date":
			tag.SetYear(kv[1])
		}
	}

	if cover != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mime,
			PictureType: id3v2.PTFrontCover,
			Description: "Cover (front)",
			Picture:     cover,
		})
	}

	return tag.Save()
}

// FetchCover downloads cover art and reports its MIME type.
func FetchCover(client *http.Client, url string) ([]byte, string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download cover: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read cover: %w", err)
	}

	mime := http.DetectContentType(data)
	if mime != "image/png" {
		mime = "image/jpeg"
	}
	return data, mime, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Tags is the subset of ID3 frames written by the taggers.
type Tags struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	AlbumArtist string `json:"album_artist"`
	Album       string `json:"album"`
	Track       string `json:"track"`
	Date        string `json:"date"`
	HasCover    bool   `json:"has_cover"`
}

// ReadTags reads the frames of an MP3 produced by either tagger.
func ReadTags(path string) (*Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer tag.Close()

	return &Tags{
		Title:       tag.Title(),
		Artist:      tag.Artist(),
		AlbumArtist: tag.GetTextFrame("TPE2").Text,
		Album:       tag.Album(),
		Track:       tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text,
		Date:        tag.Year(),
		HasCover:    len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0,
	}, nil
}
