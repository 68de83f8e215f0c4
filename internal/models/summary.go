package models

import (
	"time"

	"github.com/samber/lo"
)

// JobResult is the terminal record of one per-track job.
type JobResult struct {
	Index int   `json:"index"`
	Track Track `json:"track"`
	// State is JobDone or JobFailed.
	State JobState `json:"state"`
	// FailedAt is the stage the job was in when it failed.
	FailedAt   JobState   `json:"failed_at,omitempty"`
	Candidate  *Candidate `json:"candidate,omitempty"`
	OutputPath string     `json:"output_path,omitempty"`
	Error      string     `json:"error,omitempty"`
	Err        error      `json:"-"`
}

// OK reports whether the job reached [JobDone].
func (r JobResult) OK() bool {
	return r.State == JobDone
}

// Summary is the outcome of one batch, with results in collection order.
type Summary struct {
	BatchID      string      `json:"batch_id,omitempty"`
	Provider     Provider    `json:"-"`
	Kind         Kind        `json:"kind"`
	Collection   string      `json:"collection"`
	OutputDir    string      `json:"output_dir"`
	PlaylistPath string      `json:"playlist_path,omitempty"`
	Succeeded    int         `json:"succeeded"`
	Failed       int         `json:"failed"`
	Results      []JobResult `json:"results"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
}

// Total is the number of jobs in the batch.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Failures returns the failed jobs in collection order.
func (s *Summary) Failures() []JobResult {
	return lo.Filter(s.Results, func(r JobResult, _ int) bool { return !r.OK() })
}

// Outputs returns the paths of successful jobs in collection order.
func (s *Summary) Outputs() []string {
	return lo.FilterMap(s.Results, func(r JobResult, _ int) (string, bool) {
		return r.OutputPath, r.OK()
	})
}
