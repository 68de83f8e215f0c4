// Spotify Web API [Resolver] implementation
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyBaseURL  = "https://api.spotify.com/v1"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	playlistPageSize = 100
	albumPageSize    = 50

	// playlistTrackFields limits playlist pages to what searching and tagging need.
	playlistTrackFields = "next,items.track(name,artists.name,duration_ms,track_number,album(name,release_date,artists,images,total_tracks))"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL string `json:"url"`
}

// SpotifyArtist represents a simplified artist.
type SpotifyArtist struct {
	Name string `json:"name"`
}

// SpotifyAlbum represents the album metadata attached to a track.
type SpotifyAlbum struct {
	Name        string          `json:"name"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	Artists     []SpotifyArtist `json:"artists"`
	Images      []SpotifyImage  `json:"images"`
}

// SpotifyTrack represents a full track object. Album is absent on album track listings.
type SpotifyTrack struct {
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	Album       *SpotifyAlbum   `json:"album"`
	TrackNumber int             `json:"track_number"`
	DurationMS  uint64          `json:"duration_ms"`
}

type spotifyTrackPage struct {
	Items []SpotifyTrack `json:"items"`
	Next  *string        `json:"next"`
	Total int            `json:"total"`
}

// SpotifyAlbumResponse is the album header with its first page of tracks embedded.
type SpotifyAlbumResponse struct {
	SpotifyAlbum
	Tracks spotifyTrackPage `json:"tracks"`
}

type spotifyPlaylistItem struct {
	Track *SpotifyTrack `json:"track"`
}

type spotifyPlaylistPage struct {
	Items []spotifyPlaylistItem `json:"items"`
	Next  *string               `json:"next"`
}

// SpotifyService resolves Spotify tracks, albums and playlists.
type SpotifyService struct {
	baseURL    string
	tokens     oauth2.TokenSource
	httpClient *http.Client
}

// NewSpotifyService creates a Spotify resolver. An empty baseURL uses the public Web API.
func NewSpotifyService(baseURL string, tokens oauth2.TokenSource) *SpotifyService {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	return &SpotifyService{baseURL: baseURL, tokens: tokens, httpClient: http.DefaultClient}
}

// WithHTTPClient replaces the client used for API calls.
func (s *SpotifyService) WithHTTPClient(c *http.Client) *SpotifyService {
	s.httpClient = c
	return s
}

// Resolve implements [Resolver].
func (s *SpotifyService) Resolve(ctx context.Context, ref models.CatalogReference) (*models.Collection, error) {
	switch ref.Kind {
	case models.KindTrack:
		track, err := s.Track(ctx, ref.Identifier)
		if err != nil {
			return nil, err
		}
		return &models.Collection{Kind: models.KindTrack, Name: track.Name, Tracks: []models.Track{*track}}, nil
	case models.KindAlbum:
		return s.Album(ctx, ref.Identifier)
	case models.KindPlaylist:
		return s.Playlist(ctx, ref.Identifier)
	default:
		return nil, fmt.Errorf("%w: spotify has no %s", shared.ErrUnsupportedKind, ref.Kind)
	}
}

// doRequest performs an authenticated GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.tokens == nil {
		return fmt.Errorf("%w: spotify token source not configured", shared.ErrAuth)
	}
	token, err := s.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuth, err)
	}
	return getJSON(ctx, s.httpClient, s.baseURL+endpoint, "Bearer "+token.AccessToken, result)
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, trackID string) (*models.Track, error) {
	var track SpotifyTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(trackID), &track); err != nil {
		return nil, err
	}

	album := SpotifyAlbum{}
	if track.Album != nil {
		album = *track.Album
	}
	converted := convertTrack(track, convertAlbum(album))
	return &converted, nil
}

// Album retrieves an album and every page of its track listing.
//
// Album track listings omit the album object, so each track takes the header's metadata.
func (s *SpotifyService) Album(ctx context.Context, albumID string) (*models.Collection, error) {
	var resp SpotifyAlbumResponse
	id := url.PathEscape(albumID)
	if err := s.doRequest(ctx, "/albums/"+id, &resp); err != nil {
		return nil, err
	}

	items := resp.Tracks.Items
	for offset := len(items); hasNext(resp.Tracks.Next); offset += albumPageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(albumPageSize))

		resp.Tracks = spotifyTrackPage{}
		if err := s.doRequest(ctx, "/albums/"+id+"/tracks?"+q.Encode(), &resp.Tracks); err != nil {
			return nil, err
		}
		if len(resp.Tracks.Items) == 0 {
			break
		}
		items = append(items, resp.Tracks.Items...)
	}

	album := convertAlbum(resp.SpotifyAlbum)
	if album.TotalTracks == 0 {
		album.TotalTracks = len(items)
	}

	tracks := make([]models.Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, convertTrack(item, album))
	}
	return &models.Collection{Kind: models.KindAlbum, Name: album.Name, Tracks: tracks}, nil
}

// Playlist fetches the playlist name, then pages through its tracks in order.
//
// Entries without a track object (removed or local files) are skipped.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Collection, error) {
	id := url.PathEscape(playlistID)

	var header struct {
		Name string `json:"name"`
	}
	if err := s.doRequest(ctx, "/playlists/"+id+"?fields=name", &header); err != nil {
		return nil, err
	}

	var tracks []models.Track
	for offset := 0; ; offset += playlistPageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(playlistPageSize))
		q.Set("fields", playlistTrackFields)

		var page spotifyPlaylistPage
		if err := s.doRequest(ctx, "/playlists/"+id+"/tracks?"+q.Encode(), &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			album := SpotifyAlbum{}
			if item.Track.Album != nil {
				album = *item.Track.Album
			}
			tracks = append(tracks, convertTrack(*item.Track, convertAlbum(album)))
		}

		if !hasNext(page.Next) || len(page.Items) == 0 {
			break
		}
	}

	return &models.Collection{Kind: models.KindPlaylist, Name: header.Name, Tracks: tracks}, nil
}

func hasNext(next *string) bool {
	return next != nil && *next != ""
}

func convertArtists(in []SpotifyArtist) []models.Artist {
	out := make([]models.Artist, len(in))
	for i, a := range in {
		out[i] = models.Artist{Name: a.Name}
	}
	return out
}

func convertAlbum(a SpotifyAlbum) models.Album {
	images := make([]models.Image, len(a.Images))
	for i, img := range a.Images {
		images[i] = models.Image{URL: img.URL}
	}
	return models.Album{
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		Artists:     convertArtists(a.Artists),
		Images:      images,
		TotalTracks: a.TotalTracks,
	}
}

func convertTrack(t SpotifyTrack, album models.Album) models.Track {
	return models.Track{
		Name:        t.Name,
		Artists:     convertArtists(t.Artists),
		Album:       album,
		DurationMS:  t.DurationMS,
		TrackNumber: t.TrackNumber,
		TotalTracks: album.TotalTracks,
	}
}
