package tasks

import (
	"fmt"

	"github.com/desertthunder/spotydw/internal/models"
)

// ProgressUpdate represents a progress event during a download run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase           // Run phase
	Step    int             // Current step number within phase
	Total   int             // Total steps in this phase
	Index   int             // Track index for PhaseJob updates, -1 otherwise
	State   models.JobState // Job state for PhaseJob updates
	Message string          // Human-readable message for display
	Data    any             // Optional phase-specific data for advanced UIs
}

// Phase of a download run.
type Phase int

const (
	PhaseResolve Phase = iota
	PhaseJob
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseResolve:
		return "resolve"
	case PhaseJob:
		return "job"
	case PhaseSummary:
		return "summary"
	default:
		return ""
	}
}

func resolvingUpdate(ref models.CatalogReference) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseResolve,
		Step:    0,
		Total:   1,
		Index:   -1,
		Message: fmt.Sprintf("Resolving %s %s...", ref.Provider, ref.Kind),
	}
}

func resolvedUpdate(c *models.Collection) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseResolve,
		Step:    1,
		Total:   1,
		Index:   -1,
		Message: fmt.Sprintf("Found %s: %s (%d tracks)", c.Kind, c.Name, len(c.Tracks)),
		Data:    c,
	}
}

func jobStateUpdate(j job, state models.JobState) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseJob,
		Step:    j.index + 1,
		Total:   j.total,
		Index:   j.index,
		State:   state,
		Message: fmt.Sprintf("[%d/%d] %s: %s", j.index+1, j.total, state, j.track.DisplayName()),
	}
}

func jobFinishedUpdate(completed, total int, res models.JobResult) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", completed, total, res.Track.DisplayName())
	if !res.OK() {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %s", completed, total, res.Track.DisplayName(), res.Error)
	}
	return ProgressUpdate{
		Phase:   PhaseJob,
		Step:    completed,
		Total:   total,
		Index:   res.Index,
		State:   res.State,
		Message: msg,
		Data:    res,
	}
}

func summaryUpdate(s *models.Summary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseSummary,
		Step:    1,
		Total:   1,
		Index:   -1,
		Message: fmt.Sprintf("%d succeeded, %d failed", s.Succeeded, s.Failed),
		Data:    s,
	}
}
