// Package catalog classifies user supplied URLs into [models.CatalogReference] values.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

const (
	spotifyHost    = "open.spotify.com"
	soundcloudHost = "soundcloud.com"
)

var spotifyKinds = map[string]models.Kind{
	"track":    models.KindTrack,
	"album":    models.KindAlbum,
	"playlist": models.KindPlaylist,
}

// Classify parses raw into a provider, collection kind and identifier.
//
// Spotify links yield the opaque id from /{kind}/{id}; SoundCloud links keep the
// whole URL since the SoundCloud API resolves by URL.
func Classify(raw string) (models.CatalogReference, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "spotify:") {
		return classifySpotifyURI(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return models.CatalogReference{}, fmt.Errorf("%w: %v", shared.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return models.CatalogReference{}, fmt.Errorf("%w: %q is not an absolute URL", shared.ErrInvalidURL, raw)
	}

	switch host := strings.ToLower(u.Hostname()); host {
	case spotifyHost:
		return classifySpotifyPath(u.Path)
	case soundcloudHost, "www." + soundcloudHost, "m." + soundcloudHost:
		return classifySoundCloud(u, raw)
	default:
		return models.CatalogReference{}, fmt.Errorf("%w: %s", shared.ErrUnsupportedHost, host)
	}
}

func classifySpotifyPath(path string) (models.CatalogReference, error) {
	segments := pathSegments(path)
	// localized links look like /intl-de/track/{id}
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return models.CatalogReference{}, fmt.Errorf("%w: missing collection kind", shared.ErrInvalidURL)
	}
	return spotifyReference(segments[0], segments[1:])
}

func classifySpotifyURI(raw string) (models.CatalogReference, error) {
	parts := strings.Split(strings.TrimPrefix(raw, "spotify:"), ":")
	return spotifyReference(parts[0], parts[1:])
}

func spotifyReference(kindSegment string, rest []string) (models.CatalogReference, error) {
	kind, ok := spotifyKinds[kindSegment]
	if !ok {
		return models.CatalogReference{}, fmt.Errorf("%w: %q", shared.ErrUnsupportedKind, kindSegment)
	}
	if len(rest) == 0 || rest[0] == "" {
		return models.CatalogReference{}, fmt.Errorf("%w: missing %s id", shared.ErrInvalidURL, kind)
	}
	return models.CatalogReference{Provider: models.Primary, Kind: kind, Identifier: rest[0]}, nil
}

// classifySoundCloud treats /{user}/sets/{slug} as a set and anything else as a track.
func classifySoundCloud(u *url.URL, raw string) (models.CatalogReference, error) {
	segments := pathSegments(u.Path)
	if len(segments) < 2 {
		return models.CatalogReference{}, fmt.Errorf("%w: expected /{user}/{track} path", shared.ErrInvalidURL)
	}

	kind := models.KindTrack
	if segments[1] == "sets" {
		kind = models.KindSet
	}
	return models.CatalogReference{Provider: models.Secondary, Kind: kind, Identifier: raw}, nil
}

func pathSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
