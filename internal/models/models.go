package models

import (
	"strings"

	"github.com/samber/lo"
)

// Provider identifies the catalog a reference points into.
type Provider int

const (
	// Primary is the streaming catalog (Spotify).
	Primary Provider = iota
	// Secondary is the URL-resolved host (SoundCloud).
	Secondary
)

func (p Provider) String() string {
	switch p {
	case Primary:
		return "spotify"
	case Secondary:
		return "soundcloud"
	default:
		return "unknown"
	}
}

// Kind is the shape of the collection a reference resolves to.
type Kind int

const (
	KindTrack Kind = iota
	KindAlbum
	KindPlaylist
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// CatalogReference is an immutable provider/kind/identifier triple.
//
// For [Secondary] references Identifier holds the full original URL.
type CatalogReference struct {
	Provider   Provider
	Kind       Kind
	Identifier string
}

// Artist is a credited performer.
type Artist struct {
	Name string `json:"name"`
}

// Image is a piece of artwork; the first image of an album is its cover.
type Image struct {
	URL string `json:"url"`
}

// Album carries the release metadata written into tags.
type Album struct {
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	Artists     []Artist `json:"artists"`
	Images      []Image  `json:"images"`
	TotalTracks int      `json:"total_tracks"`
}

// CoverURL returns the canonical cover art URL, or "" when the album has no images.
func (a Album) CoverURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}

// ArtistNames returns the album artists in display order.
func (a Album) ArtistNames() []string {
	return lo.Map(a.Artists, func(ar Artist, _ int) string { return ar.Name })
}

// Track is the canonical metadata for a catalog entry.
//
// Source is set when the catalog itself hosts the media (SoundCloud) so no search is needed.
type Track struct {
	Name        string     `json:"name"`
	Artists     []Artist   `json:"artists"`
	Album       Album      `json:"album"`
	DurationMS  uint64     `json:"duration_ms"`
	TrackNumber int        `json:"track_number"`
	TotalTracks int        `json:"total_tracks"`
	Source      *Candidate `json:"source,omitempty"`
}

// ArtistNames returns the track artists in display order.
func (t Track) ArtistNames() []string {
	return lo.Map(t.Artists, func(a Artist, _ int) string { return a.Name })
}

// DisplayName renders "Name - Artist, Artist" for logs and summaries.
func (t Track) DisplayName() string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	return t.Name + " - " + strings.Join(t.ArtistNames(), ", ")
}

// Collection is a fully resolved catalog reference. A [KindTrack] collection holds exactly one track.
type Collection struct {
	Kind   Kind    `json:"kind"`
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// Single reports whether the collection is a lone track that runs without a worker pool.
func (c Collection) Single() bool {
	return c.Kind == KindTrack
}

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// Candidate is a search result that may substitute for a catalog track.
type Candidate struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DurationMS uint64 `json:"duration_ms"`
	// URL overrides the watch URL derived from ID.
	URL string `json:"url,omitempty"`
}

// SourceURL is the address handed to the downloader.
func (c Candidate) SourceURL() string {
	if c.URL != "" {
		return c.URL
	}
	return youtubeWatchURL + c.ID
}

// JobState is a stage of a per-track job.
type JobState int

const (
	JobPending JobState = iota
	JobSearching
	JobMatching
	JobAcquiring
	JobTagging
	JobDone
	JobFailed
)

func (s JobState) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobSearching:
		return "searching"
	case JobMatching:
		return "matching"
	case JobAcquiring:
		return "acquiring"
	case JobTagging:
		return "tagging"
	case JobDone:
		return "done"
	case JobFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s JobState) Terminal() bool {
	return s == JobDone || s == JobFailed
}

// MarshalText renders the state name in JSON manifests.
func (s JobState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText renders the kind name in JSON manifests.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
