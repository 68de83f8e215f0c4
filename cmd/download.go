package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/spotydw/internal/catalog"
	"github.com/desertthunder/spotydw/internal/formatter"
	"github.com/desertthunder/spotydw/internal/media"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/repositories"
	"github.com/desertthunder/spotydw/internal/services"
	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/desertthunder/spotydw/internal/tasks"
	"github.com/desertthunder/spotydw/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Download classifies the URL argument, resolves it and runs the download pipeline over every track.
//
// Unsupported URLs, missing tools and resolution failures end the command with an error; failed
// tracks are reported in the summary only.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("url")
	if raw == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	ref, err := catalog.Classify(raw)
	if err != nil {
		return err
	}

	settings := r.downloadSettings(cmd)
	check := *r.config
	check.Download = settings
	if err := check.Validate(); err != nil {
		return err
	}

	downloader, tagger, err := r.pipeline(settings)
	if err != nil {
		return err
	}

	resolver, err := r.catalog(ctx)
	if err != nil {
		return err
	}

	engine := tasks.NewEngine(resolver, r.searcher(settings), downloader, tagger, r.logger)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("download history disabled", "error", err)
	} else {
		defer db.Close()
		engine.WithHistory(repositories.NewHistory(db))
	}

	opts := tasks.Options{
		OutputDir: settings.OutputDir,
		Workers:   settings.Workers,
		Playlist:  settings.Playlist,
		SourceURL: raw,
	}

	r.logger.Info("starting download", "provider", ref.Provider, "kind", ref.Kind, "id", ref.Identifier)

	var summary *models.Summary
	if cmd.Bool("tui") {
		summary, err = ui.Run(ctx, raw, func(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*models.Summary, error) {
			return engine.Run(ctx, ref, opts, progress)
		})
	} else if cmd.Bool("json") {
		summary, err = engine.Run(ctx, ref, opts, nil)
	} else {
		summary, err = r.runWithProgress(ctx, engine, ref, opts)
	}
	if err != nil {
		return err
	}

	if path := cmd.String("report"); path != "" {
		if err := formatter.WriteCSVReport(summary, path); err != nil {
			return err
		}
		r.logger.Info("report written", "path", path)
	}

	if cmd.Bool("json") {
		if !cmd.Bool("pretty") {
			return r.writeJSON(summary, false)
		}
		data, err := formatter.ToManifestJSON(summary)
		if err != nil {
			return err
		}
		return r.writeRaw(data)
	}
	return formatter.WriteSummary(r.output, summary)
}

// runWithProgress prints resolution and per-track stage messages while the engine runs.
func (r *Runner) runWithProgress(ctx context.Context, engine *tasks.Engine, ref models.CatalogReference, opts tasks.Options) (*models.Summary, error) {
	progressCh := make(chan tasks.ProgressUpdate, 64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for update := range progressCh {
			switch update.Phase {
			case tasks.PhaseResolve:
				r.writePlain("%s\n", update.Message)
			case tasks.PhaseJob:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary, err := engine.Run(ctx, ref, opts, progressCh)
	close(progressCh)
	<-printed

	if err == nil {
		r.writePlain("\n")
	}
	return summary, err
}

// downloadSettings applies command flags over the [download] config section.
func (r *Runner) downloadSettings(cmd *cli.Command) shared.DownloadConfig {
	s := r.config.Download
	if cmd.IsSet("output") {
		s.OutputDir = cmd.String("output")
	}
	if cmd.IsSet("workers") {
		s.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("format") {
		s.AudioFormat = cmd.String("format")
	}
	if cmd.IsSet("tagger") {
		s.Tagger = cmd.String("tagger")
	}
	if cmd.IsSet("playlist") {
		s.Playlist = cmd.Bool("playlist")
	}
	return s
}

// pipeline builds the acquisition and tagging stages, locating yt-dlp and ffmpeg as needed.
func (r *Runner) pipeline(s shared.DownloadConfig) (media.Downloader, media.Tagger, error) {
	downloader := r.downloader
	if downloader == nil {
		path, err := media.LookupTool(r.config.Tools.YtDlp, "yt-dlp")
		if err != nil {
			return nil, nil, err
		}
		downloader = media.NewYTDLP(path, s.AudioFormat, r.logger)
	}

	tagger := r.tagger
	if tagger != nil {
		return downloader, tagger, nil
	}

	switch s.Tagger {
	case "id3":
		tagger = media.NewID3Tagger(r.httpClient, r.logger)
	default:
		path, err := media.LookupTool(r.config.Tools.FFmpeg, "ffmpeg")
		if err != nil {
			return nil, nil, err
		}
		tagger = media.NewFFmpegTagger(path, r.logger)
	}
	return downloader, tagger, nil
}

// catalog registers a resolver for every provider that has credentials configured.
func (r *Runner) catalog(ctx context.Context) (services.Catalog, error) {
	c := services.Catalog{}
	creds := r.config.Credentials

	if creds.Spotify.ClientID != "" && creds.Spotify.ClientSecret != "" {
		cachePath := ""
		if r.configPath != "" {
			cachePath = filepath.Join(filepath.Dir(r.configPath), shared.TokenFileName)
		}

		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
		tokens, err := services.NewSpotifyTokenSource(tokenCtx, creds.Spotify.ClientID, creds.Spotify.ClientSecret, r.endpoints.SpotifyToken, cachePath, r.logger)
		if err != nil {
			return nil, err
		}
		c[models.Primary] = services.NewSpotifyService(r.endpoints.SpotifyAPI, tokens).WithHTTPClient(r.httpClient)
	}

	if creds.SoundCloud.OAuthToken != "" {
		c[models.Secondary] = services.NewSoundCloudService(r.endpoints.SoundCloud, creds.SoundCloud.OAuthToken).
			WithHTTPClient(r.httpClient)
	}
	return c, nil
}

func (r *Runner) searcher(s shared.DownloadConfig) *services.YouTubeService {
	return services.NewYouTubeService(r.endpoints.YouTube, s.SearchRate).WithHTTPClient(r.httpClient)
}
