// SoundCloud [Resolver] implementation
//
// Tracks and sets are resolved by their public URL through the api-v2 resolve endpoint.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
	"golang.org/x/sync/errgroup"
)

const (
	soundcloudBaseURL = "https://api-v2.soundcloud.com"
	// setFetchLimit bounds concurrent member lookups for a set.
	setFetchLimit = 4
)

// SoundCloudUser is the uploader of a track.
type SoundCloudUser struct {
	Username string `json:"username"`
}

// SoundCloudTrack is the subset of the api-v2 track object used for tagging.
type SoundCloudTrack struct {
	ID           uint64         `json:"id"`
	Title        string         `json:"title"`
	User         SoundCloudUser `json:"user"`
	DisplayDate  string         `json:"display_date"`
	ArtworkURL   string         `json:"artwork_url"`
	PermalinkURL string         `json:"permalink_url"`
	Duration     uint64         `json:"duration"`
}

// SoundCloudSet is a playlist or album; member tracks may be stubs carrying only an id.
type SoundCloudSet struct {
	Title  string `json:"title"`
	Tracks []struct {
		ID uint64 `json:"id"`
	} `json:"tracks"`
}

// SoundCloudService resolves SoundCloud tracks and sets.
type SoundCloudService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewSoundCloudService creates a SoundCloud resolver authenticated with an OAuth token.
func NewSoundCloudService(baseURL, token string) *SoundCloudService {
	if baseURL == "" {
		baseURL = soundcloudBaseURL
	}
	return &SoundCloudService{baseURL: baseURL, token: token, httpClient: http.DefaultClient}
}

// WithHTTPClient replaces the client used for API calls.
func (s *SoundCloudService) WithHTTPClient(c *http.Client) *SoundCloudService {
	s.httpClient = c
	return s
}

// Resolve implements [Resolver].
func (s *SoundCloudService) Resolve(ctx context.Context, ref models.CatalogReference) (*models.Collection, error) {
	if s.token == "" {
		return nil, fmt.Errorf("%w: soundcloud oauth token not configured", shared.ErrMissingCredentials)
	}

	switch ref.Kind {
	case models.KindTrack:
		var track SoundCloudTrack
		if err := s.resolve(ctx, ref.Identifier, &track); err != nil {
			return nil, err
		}
		t := convertSoundCloudTrack(track, track.Title, 1, 1)
		return &models.Collection{Kind: models.KindTrack, Name: t.Name, Tracks: []models.Track{t}}, nil
	case models.KindSet:
		return s.Set(ctx, ref.Identifier)
	default:
		return nil, fmt.Errorf("%w: soundcloud has no %s", shared.ErrUnsupportedKind, ref.Kind)
	}
}

// Set resolves a set URL and fetches every member track, preserving set order.
//
// Any failed member lookup fails the whole set.
func (s *SoundCloudService) Set(ctx context.Context, setURL string) (*models.Collection, error) {
	var set SoundCloudSet
	if err := s.resolve(ctx, setURL, &set); err != nil {
		return nil, err
	}

	members := make([]SoundCloudTrack, len(set.Tracks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(setFetchLimit)
	for i, stub := range set.Tracks {
		g.Go(func() error {
			endpoint := s.baseURL + "/tracks/" + strconv.FormatUint(stub.ID, 10)
			return getJSON(gctx, s.httpClient, endpoint, s.authorization(), &members[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, len(members))
	for i, m := range members {
		tracks[i] = convertSoundCloudTrack(m, set.Title, i+1, len(members))
	}
	return &models.Collection{Kind: models.KindSet, Name: set.Title, Tracks: tracks}, nil
}

func (s *SoundCloudService) resolve(ctx context.Context, target string, result any) error {
	endpoint := s.baseURL + "/resolve?" + url.Values{"url": {target}}.Encode()
	return getJSON(ctx, s.httpClient, endpoint, s.authorization(), result)
}

func (s *SoundCloudService) authorization() string {
	return "OAuth " + s.token
}

// artworkURL swaps the default 100x100 artwork for the 500x500 rendition.
func artworkURL(u string) string {
	return strings.Replace(u, "-large.", "-t500x500.", 1)
}

func convertSoundCloudTrack(t SoundCloudTrack, album string, number, total int) models.Track {
	artists := []models.Artist{{Name: t.User.Username}}

	var images []models.Image
	if t.ArtworkURL != "" {
		images = []models.Image{{URL: artworkURL(t.ArtworkURL)}}
	}

	return models.Track{
		Name:    t.Title,
		Artists: artists,
		Album: models.Album{
			Name:        album,
			ReleaseDate: t.DisplayDate,
			Artists:     artists,
			Images:      images,
			TotalTracks: total,
		},
		DurationMS:  t.Duration,
		TrackNumber: number,
		TotalTracks: total,
		Source: &models.Candidate{
			ID:         strconv.FormatUint(t.ID, 10),
			Title:      t.Title,
			DurationMS: t.Duration,
			URL:        t.PermalinkURL,
		},
	}
}
