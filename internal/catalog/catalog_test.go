package catalog

import (
	"errors"
	"testing"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

func TestClassify(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    models.CatalogReference
		wantErr error
	}{
		{
			name:  "spotify track",
			input: "https://open.spotify.com/track/abc123",
			want:  models.CatalogReference{Provider: models.Primary, Kind: models.KindTrack, Identifier: "abc123"},
		},
		{
			name:  "spotify album",
			input: "https://open.spotify.com/album/xyz",
			want:  models.CatalogReference{Provider: models.Primary, Kind: models.KindAlbum, Identifier: "xyz"},
		},
		{
			name:  "spotify playlist with share query",
			input: "https://open.spotify.com/playlist/p1?si=deadbeef",
			want:  models.CatalogReference{Provider: models.Primary, Kind: models.KindPlaylist, Identifier: "p1"},
		},
		{
			name:  "localized spotify link",
			input: "https://open.spotify.com/intl-de/track/abc123",
			want:  models.CatalogReference{Provider: models.Primary, Kind: models.KindTrack, Identifier: "abc123"},
		},
		{
			name:  "spotify uri",
			input: "spotify:album:xyz",
			want:  models.CatalogReference{Provider: models.Primary, Kind: models.KindAlbum, Identifier: "xyz"},
		},
		{
			name:  "soundcloud track keeps full url",
			input: "https://soundcloud.com/artist/some-track",
			want:  models.CatalogReference{Provider: models.Secondary, Kind: models.KindTrack, Identifier: "https://soundcloud.com/artist/some-track"},
		},
		{
			name:  "soundcloud set",
			input: "https://soundcloud.com/artist/sets/my-set",
			want:  models.CatalogReference{Provider: models.Secondary, Kind: models.KindSet, Identifier: "https://soundcloud.com/artist/sets/my-set"},
		},
		{name: "unrecognized spotify kind", input: "https://open.spotify.com/artist/a1", wantErr: shared.ErrUnsupportedKind},
		{name: "spotify uri unrecognized kind", input: "spotify:show:a1", wantErr: shared.ErrUnsupportedKind},
		{name: "unknown host", input: "https://music.example.com/track/abc", wantErr: shared.ErrUnsupportedHost},
		{name: "missing spotify id", input: "https://open.spotify.com/track/", wantErr: shared.ErrInvalidURL},
		{name: "soundcloud profile only", input: "https://soundcloud.com/artist", wantErr: shared.ErrInvalidURL},
		{name: "not a url", input: "hello world", wantErr: shared.ErrInvalidURL},
		{name: "bad escape", input: "https://open.spotify.com/%zz", wantErr: shared.ErrInvalidURL},
		{name: "empty", input: "", wantErr: shared.ErrInvalidURL},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Classify(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
