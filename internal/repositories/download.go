package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

const downloadColumns = `id, batch_id, provider, collection, track, artists, source_url, output_path, state, error, created_at`

// DownloadRepository persists [models.Download] rows.
type DownloadRepository struct {
	db *sql.DB
}

// NewDownloadRepository creates a new DownloadRepository with the given database connection
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Create inserts a new download with a generated ID
func (r *DownloadRepository) Create(d *models.Download) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	d.ID = shared.GenerateID()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO downloads (` + downloadColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		d.ID,
		d.BatchID,
		d.Provider,
		d.Collection,
		d.Track,
		d.Artists,
		d.SourceURL,
		d.OutputPath,
		d.State,
		d.Error,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert download: %w", err)
	}
	return nil
}

// Get retrieves a download by ID
func (r *DownloadRepository) Get(id string) (*models.Download, error) {
	row := r.db.QueryRow(`SELECT `+downloadColumns+` FROM downloads WHERE id = ?`, id)

	d, err := scanDownload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: download %s", ErrNotFound, id)
	}
	return d, err
}

// List retrieves downloads matching the given criteria, newest first.
//
// Supported criteria are "batch_id", "state" and "limit".
func (r *DownloadRepository) List(criteria map[string]any) ([]*models.Download, error) {
	query := `SELECT ` + downloadColumns + ` FROM downloads WHERE 1 = 1`
	args := []any{}

	if batchID, ok := criteria["batch_id"].(string); ok && batchID != "" {
		query += " AND batch_id = ?"
		args = append(args, batchID)
	}

	if state, ok := criteria["state"].(string); ok && state != "" {
		query += " AND state = ?"
		args = append(args, state)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	var downloads []*models.Download
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return downloads, nil
}

func scanDownload(s scanner) (*models.Download, error) {
	var d models.Download

	err := s.Scan(
		&d.ID, &d.BatchID, &d.Provider, &d.Collection, &d.Track, &d.Artists,
		&d.SourceURL, &d.OutputPath, &d.State, &d.Error, &d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan download: %w", err)
	}
	return &d, nil
}
