package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

const batchColumns = `id, source_url, kind, name, total, succeeded, failed, started_at, finished_at`

// BatchRepository persists [models.Batch] rows.
type BatchRepository struct {
	db *sql.DB
}

// NewBatchRepository creates a new BatchRepository with the given database connection
func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create inserts a new batch with a generated ID. A zero StartedAt is set to now.
func (r *BatchRepository) Create(batch *models.Batch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	batch.ID = shared.GenerateID()
	if batch.StartedAt.IsZero() {
		batch.StartedAt = time.Now().UTC()
	}

	query := `INSERT INTO batches (` + batchColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		batch.ID,
		batch.SourceURL,
		batch.Kind,
		batch.Name,
		batch.Total,
		batch.Succeeded,
		batch.Failed,
		batch.StartedAt,
		batch.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

// Finish stores the final counts and stamps finished_at.
func (r *BatchRepository) Finish(batch *models.Batch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	batch.FinishedAt = &now

	query := `
		UPDATE batches
		SET name = ?, total = ?, succeeded = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, batch.Name, batch.Total, batch.Succeeded, batch.Failed, now, batch.ID)
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}
	return checkAffected(result, "batch", batch.ID)
}

// Get retrieves a batch by ID.
func (r *BatchRepository) Get(id string) (*models.Batch, error) {
	row := r.db.QueryRow(`SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)

	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: batch %s", ErrNotFound, id)
	}
	return batch, err
}

// List returns the most recent batches first. A non-positive limit returns all rows.
func (r *BatchRepository) List(limit int) ([]*models.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return batches, nil
}

func scanBatch(s scanner) (*models.Batch, error) {
	var (
		batch      models.Batch
		finishedAt sql.NullTime
	)

	err := s.Scan(
		&batch.ID, &batch.SourceURL, &batch.Kind, &batch.Name,
		&batch.Total, &batch.Succeeded, &batch.Failed,
		&batch.StartedAt, &finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}

	if finishedAt.Valid {
		batch.FinishedAt = &finishedAt.Time
	}
	return &batch, nil
}
