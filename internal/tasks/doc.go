// Package tasks runs the download pipeline for one catalog reference with real-time progress reporting.
//
// # Pipeline
//
// [Engine.Run] resolves the reference once and then runs one job per track:
//
//  1. Searching : query the video host with "{name} - {artists}" (skipped for tracks that carry their own source)
//  2. Matching : pick the closest duration among the top ranked candidates
//  3. Acquiring : download the candidate's audio into the collection directory
//  4. Tagging : write canonical metadata and cover art into the final MP3
//
// A single track runs inline. Albums, playlists and sets fan out over a bounded worker pool.
// A failed or panicking job is recorded in the [models.Summary] and never stops its siblings.
// Resolution failures abort the run before any job starts.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends use select with default so
// a slow consumer drops updates instead of stalling workers.
//
// # History
//
// The optional [HistoryRecorder] receives one batch and one row per finished job. Only the
// collecting goroutine writes to it, and recorder errors are logged without failing the run.
package tasks
