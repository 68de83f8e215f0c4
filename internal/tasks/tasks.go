package tasks

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/formatter"
	"github.com/desertthunder/spotydw/internal/match"
	"github.com/desertthunder/spotydw/internal/media"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/services"
	"github.com/desertthunder/spotydw/internal/shared"
)

// HistoryRecorder persists batches and job outcomes. Implemented by repositories.History.
type HistoryRecorder interface {
	Begin(batch *models.Batch) error
	Record(d *models.Download) error
	End(batch *models.Batch) error
}

// Options configures one run.
type Options struct {
	OutputDir string // Root output directory (default: current directory)
	Workers   int    // Concurrent jobs for multi-track collections (default: runtime.NumCPU())
	Playlist  bool   // Write an M3U playlist of successful outputs
	SourceURL string // Original input, stored with the history batch

	Provider models.Provider // Catalog the collection came from; set by [Engine.Run]
}

// Engine composes resolution, search, matching, acquisition and tagging.
type Engine struct {
	resolver   services.Resolver
	searcher   services.Searcher
	downloader media.Downloader
	tagger     media.Tagger
	history    HistoryRecorder
	logger     *log.Logger
}

// NewEngine creates a new Engine with the provided collaborators. A nil logger writes to stderr.
func NewEngine(resolver services.Resolver, searcher services.Searcher, downloader media.Downloader, tagger media.Tagger, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		resolver:   resolver,
		searcher:   searcher,
		downloader: downloader,
		tagger:     tagger,
		logger:     logger,
	}
}

// WithHistory records every run in h.
func (e *Engine) WithHistory(h HistoryRecorder) *Engine {
	e.history = h
	return e
}

// job is the per-track unit handed to a worker. Workers never share one.
type job struct {
	index int
	total int
	track models.Track
	dir   string
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run resolves ref and downloads every track of the resulting collection.
//
// Errors returned here are collection-fatal (resolution, authentication). Per-track failures are
// reported in the summary instead.
func (e *Engine) Run(ctx context.Context, ref models.CatalogReference, opts Options, progress chan<- ProgressUpdate) (*models.Summary, error) {
	if e.resolver == nil {
		return nil, fmt.Errorf("%w: no resolver configured", shared.ErrMissingCredentials)
	}

	e.sendProgress(progress, resolvingUpdate(ref))

	collection, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, resolvedUpdate(collection))

	opts.Provider = ref.Provider
	return e.Download(ctx, collection, opts, progress), nil
}

// Download runs one job per track of a resolved collection and summarizes the outcome.
func (e *Engine) Download(ctx context.Context, collection *models.Collection, opts Options, progress chan<- ProgressUpdate) *models.Summary {
	dir := media.CollectionDir(opts.OutputDir, *collection)
	total := len(collection.Tracks)

	summary := &models.Summary{
		Provider:   opts.Provider,
		Kind:       collection.Kind,
		Collection: collection.Name,
		OutputDir:  dir,
		Results:    make([]models.JobResult, total),
		StartedAt:  time.Now(),
	}

	batch := e.beginBatch(collection, opts)
	if batch != nil {
		summary.BatchID = batch.ID
	}

	jobs := make([]job, total)
	for i, track := range collection.Tracks {
		jobs[i] = job{index: i, total: total, track: track, dir: dir}
	}

	completed := 0
	collect := func(res models.JobResult) {
		completed++
		summary.Results[res.Index] = res
		if res.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		e.record(batch, opts.Provider, collection, res)
		e.sendProgress(progress, jobFinishedUpdate(completed, total, res))
	}

	if collection.Single() || total <= 1 {
		for _, j := range jobs {
			collect(e.runJob(ctx, j, progress))
		}
	} else {
		e.runPool(ctx, jobs, workerCount(opts.Workers, total), progress, collect)
	}

	if opts.Playlist && summary.Succeeded > 0 && !collection.Single() {
		path, err := formatter.WriteM3U(summary, dir)
		if err != nil {
			e.logger.Warn("failed to write playlist", "collection", collection.Name, "error", err)
		} else {
			summary.PlaylistPath = path
		}
	}

	summary.FinishedAt = time.Now()
	e.endBatch(batch, summary)
	e.sendProgress(progress, summaryUpdate(summary))
	return summary
}

func workerCount(configured, jobs int) int {
	n := configured
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, jobs))
}

// runPool fans jobs out over workers and hands each result to collect on the calling goroutine.
func (e *Engine) runPool(ctx context.Context, js []job, workers int, progress chan<- ProgressUpdate, collect func(models.JobResult)) {
	jobs := make(chan job, len(js))
	results := make(chan models.JobResult, len(js))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go e.worker(ctx, &wg, jobs, results, progress)
	}

	for _, j := range js {
		jobs <- j
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		collect(res)
	}
}

// worker is a goroutine that runs jobs from the jobs channel until it is closed.
func (e *Engine) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan job, results chan<- models.JobResult, progress chan<- ProgressUpdate) {
	defer wg.Done()

	for j := range jobs {
		results <- e.runJob(ctx, j, progress)
	}
}

// runJob drives one track through search, match, acquire and tag. It always returns a terminal result.
func (e *Engine) runJob(ctx context.Context, j job, progress chan<- ProgressUpdate) (res models.JobResult) {
	logger := shared.WithLogger(e.logger, "index", j.index+1, "track", j.track.DisplayName())
	state := models.JobPending

	advance := func(s models.JobState) {
		state = s
		logger.Debug("job stage", "stage", s)
		e.sendProgress(progress, jobStateUpdate(j, s))
	}
	fail := func(err error) models.JobResult {
		logger.Error("job failed", "stage", state, "error", err)
		return models.JobResult{
			Index:    j.index,
			Track:    j.track,
			State:    models.JobFailed,
			FailedAt: state,
			Error:    err.Error(),
			Err:      err,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("recovered job panic", "stack", string(debug.Stack()))
			res = fail(fmt.Errorf("%w: %v", shared.ErrJobPanicked, r))
		}
	}()

	candidate := j.track.Source
	if candidate == nil {
		advance(models.JobSearching)
		candidates, err := e.searcher.Search(ctx, match.Query(j.track))
		if err != nil {
			return fail(err)
		}

		advance(models.JobMatching)
		chosen, err := match.Select(candidates, j.track.DurationMS)
		if err != nil {
			return fail(err)
		}
		candidate = &chosen
		logger.Debug("matched candidate", "id", chosen.ID, "title", chosen.Title, "distance_ms", match.Distance(chosen.DurationMS, j.track.DurationMS))
	}

	advance(models.JobAcquiring)
	raw, err := e.downloader.Download(*candidate, j.dir)
	if err != nil {
		return fail(err)
	}

	advance(models.JobTagging)
	out, err := e.tagger.Tag(media.TagRequest{
		RawPath:  raw,
		DestPath: media.OutputPath(j.dir, j.track),
		Track:    j.track,
		CoverURL: j.track.Album.CoverURL(),
	})
	if err != nil {
		return fail(err)
	}

	logger.Info("downloaded", "path", out)
	return models.JobResult{
		Index:      j.index,
		Track:      j.track,
		State:      models.JobDone,
		Candidate:  candidate,
		OutputPath: out,
	}
}

func (e *Engine) beginBatch(c *models.Collection, opts Options) *models.Batch {
	if e.history == nil {
		return nil
	}

	batch := &models.Batch{
		SourceURL: opts.SourceURL,
		Kind:      c.Kind.String(),
		Name:      c.Name,
		Total:     len(c.Tracks),
	}
	if batch.SourceURL == "" {
		batch.SourceURL = c.Name
	}

	if err := e.history.Begin(batch); err != nil {
		e.logger.Warn("failed to record batch", "error", err)
		return nil
	}
	return batch
}

func (e *Engine) record(batch *models.Batch, provider models.Provider, c *models.Collection, res models.JobResult) {
	if batch == nil {
		return
	}

	d := &models.Download{
		BatchID:    batch.ID,
		Provider:   provider.String(),
		Collection: c.Name,
		Track:      res.Track.Name,
		Artists:    strings.Join(res.Track.ArtistNames(), ", "),
		OutputPath: res.OutputPath,
		State:      res.State.String(),
		Error:      res.Error,
	}
	if res.Candidate != nil {
		d.SourceURL = res.Candidate.SourceURL()
	}

	if err := e.history.Record(d); err != nil {
		e.logger.Warn("failed to record download", "track", res.Track.Name, "error", err)
	}
}

func (e *Engine) endBatch(batch *models.Batch, s *models.Summary) {
	if batch == nil {
		return
	}

	batch.Succeeded, batch.Failed = s.Succeeded, s.Failed
	if err := e.history.End(batch); err != nil {
		e.logger.Warn("failed to finish batch", "error", err)
	}
}
