package repositories

import (
	"database/sql"

	"github.com/desertthunder/spotydw/internal/models"
)

// History groups the batch and download repositories behind the calls made by the download pipeline.
type History struct {
	Batches   *BatchRepository
	Downloads *DownloadRepository
}

// NewHistory creates a History over db.
func NewHistory(db *sql.DB) *History {
	return &History{Batches: NewBatchRepository(db), Downloads: NewDownloadRepository(db)}
}

// Begin stores a new batch and assigns its ID.
func (h *History) Begin(batch *models.Batch) error {
	return h.Batches.Create(batch)
}

// Record stores one finished job.
func (h *History) Record(d *models.Download) error {
	return h.Downloads.Create(d)
}

// End stores the batch totals.
func (h *History) End(batch *models.Batch) error {
	return h.Batches.Finish(batch)
}

// Recent returns the latest batches, newest first.
func (h *History) Recent(limit int) ([]*models.Batch, error) {
	return h.Batches.List(limit)
}

// ForBatch returns the downloads recorded for batchID.
func (h *History) ForBatch(batchID string) ([]*models.Download, error) {
	return h.Downloads.List(map[string]any{"batch_id": batchID})
}
