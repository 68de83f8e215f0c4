package models

import (
	"errors"
	"time"
)

// Download is the persisted outcome of one per-track job.
type Download struct {
	ID         string    `json:"id"`
	BatchID    string    `json:"batch_id"`
	Provider   string    `json:"provider"`
	Collection string    `json:"collection"`
	Track      string    `json:"track"`
	Artists    string    `json:"artists"`
	SourceURL  string    `json:"source_url,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	State      string    `json:"state"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields required to store a [Download].
func (d *Download) Validate() error {
	switch {
	case d.BatchID == "":
		return errors.New("batch id is required")
	case d.Track == "":
		return errors.New("track name is required")
	case d.State == "":
		return errors.New("state is required")
	}
	return nil
}

// Batch is one invocation of the download command.
type Batch struct {
	ID         string     `json:"id"`
	SourceURL  string     `json:"source_url"`
	Kind       string     `json:"kind"`
	Name       string     `json:"name"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Validate checks the fields required to store a [Batch].
func (b *Batch) Validate() error {
	switch {
	case b.SourceURL == "":
		return errors.New("source url is required")
	case b.Kind == "":
		return errors.New("kind is required")
	case b.Succeeded+b.Failed > b.Total:
		return errors.New("more finished jobs than total")
	}
	return nil
}

// Finished reports whether the batch has a completion time.
func (b *Batch) Finished() bool {
	return b.FinishedAt != nil
}
