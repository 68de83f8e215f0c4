package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/spotydw/internal/formatter"
	"github.com/desertthunder/spotydw/internal/match"
	"github.com/desertthunder/spotydw/internal/media"
	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs the candidate search used by download and prints the ranked results.
//
// With --duration it also reports which candidate the match selector would pick.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	candidates, err := r.searcher(r.config.Download).Search(ctx, query)
	if err != nil {
		return err
	}
	r.logger.Debug("search finished", "query", query, "results", len(candidates))

	if cmd.Bool("json") {
		return r.writeJSON(candidates, cmd.Bool("pretty"))
	}

	if len(candidates) == 0 {
		return r.writePlain("No candidates for %q\n", query)
	}

	formatter.WriteCandidates(r.output, candidates)

	if cmd.IsSet("duration") {
		durationMS := cmd.Uint64("duration")
		best, err := match.Select(candidates, durationMS)
		if err != nil {
			return err
		}
		r.writePlainln("Best match for %s: %s (%s, off by %s)",
			formatter.FormatDuration(durationMS), best.Title, best.SourceURL(),
			formatter.FormatDuration(match.Distance(best.DurationMS, durationMS)))
	}
	return nil
}

// Inspect prints the tags embedded in a downloaded MP3.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	tags, err := media.ReadTags(path)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tags, cmd.Bool("pretty"))
	}

	formatter.WriteFields(r.output, [][2]string{
		{"Title", tags.Title},
		{"Artist", tags.Artist},
		{"Album Artist", tags.AlbumArtist},
		{"Album", tags.Album},
		{"Track", tags.Track},
		{"Date", tags.Date},
		{"Cover", strconv.FormatBool(tags.HasCover)},
	})
	return nil
}
