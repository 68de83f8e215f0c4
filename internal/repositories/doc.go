// Package repositories implements SQLite persistence for download history.
//
// Key Implementations:
//   - [BatchRepository] : one row per download invocation with running totals
//   - [DownloadRepository] : one row per finished track job
//   - [History] : records batches and downloads together for the download pipeline
//
// IDs are v4 UUIDs generated on insert. Lookups of missing rows return [ErrNotFound].
package repositories
