// Package match picks the search result that best substitutes for a catalog track.
package match

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

// MaxCandidates bounds how many ranked search results are compared.
const MaxCandidates = 5

// Distance returns |a-b| without wrapping.
func Distance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// Select returns the candidate among the first [MaxCandidates] whose duration is closest to durationMS.
//
// Ties go to the earliest ranked candidate. An empty list yields [shared.ErrNoCandidates].
func Select(candidates []models.Candidate, durationMS uint64) (models.Candidate, error) {
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	if len(candidates) == 0 {
		return models.Candidate{}, shared.ErrNoCandidates
	}

	best := 0
	bestDistance := Distance(candidates[0].DurationMS, durationMS)
	for i := 1; i < len(candidates); i++ {
		if d := Distance(candidates[i].DurationMS, durationMS); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return candidates[best], nil
}

// Query builds the free-text search string "{name} - {artist, artist}".
func Query(track models.Track) string {
	return fmt.Sprintf("%s - %s", track.Name, strings.Join(track.ArtistNames(), ", "))
}
