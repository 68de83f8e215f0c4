package match

import (
	"errors"
	"math"
	"testing"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

func TestDistance(t *testing.T) {
	tc := []struct {
		a, b uint64
		want uint64
	}{
		{a: 0, b: 0, want: 0},
		{a: 200_000, b: 190_000, want: 10_000},
		{a: 190_000, b: 200_000, want: 10_000},
		{a: 0, b: math.MaxUint64, want: math.MaxUint64},
		{a: 1, b: 2, want: 1},
	}

	for _, tt := range tc {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if Distance(tt.a, tt.b) != Distance(tt.b, tt.a) {
			t.Errorf("Distance(%d, %d) is not symmetric", tt.a, tt.b)
		}
	}
}

func candidates(durations ...uint64) []models.Candidate {
	out := make([]models.Candidate, len(durations))
	for i, d := range durations {
		out[i] = models.Candidate{ID: string(rune('a' + i)), DurationMS: d}
	}
	return out
}

func TestSelect(t *testing.T) {
	t.Run("closest wins", func(t *testing.T) {
		got, err := Select(candidates(300_000, 205_000, 180_000), 200_000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "b" {
			t.Errorf("expected candidate b, got %s", got.ID)
		}
	})

	t.Run("shorter candidate is not penalized", func(t *testing.T) {
		got, err := Select(candidates(260_000, 199_000), 200_000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "b" {
			t.Errorf("expected the 1s shorter candidate b, got %s", got.ID)
		}
	})

	t.Run("ties resolve to earliest rank", func(t *testing.T) {
		got, err := Select(candidates(210_000, 190_000, 210_000), 200_000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "a" {
			t.Errorf("expected candidate a, got %s", got.ID)
		}
	})

	t.Run("only the first five are considered", func(t *testing.T) {
		got, err := Select(candidates(1, 2, 3, 4, 5, 200_000), 200_000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "e" {
			t.Errorf("expected candidate e from the top five, got %s", got.ID)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		for _, in := range [][]models.Candidate{nil, {}} {
			if _, err := Select(in, 1000); !errors.Is(err, shared.ErrNoCandidates) {
				t.Errorf("expected ErrNoCandidates, got %v", err)
			}
		}
	})
}

func TestQuery(t *testing.T) {
	track := models.Track{Name: "Get Lucky", Artists: []models.Artist{{Name: "Daft Punk"}, {Name: "Pharrell Williams"}}}
	if got := Query(track); got != "Get Lucky - Daft Punk, Pharrell Williams" {
		t.Errorf("Query() = %q", got)
	}
}
