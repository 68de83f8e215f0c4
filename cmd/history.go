package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/spotydw/internal/formatter"
	"github.com/desertthunder/spotydw/internal/repositories"
	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists recent batches, or the downloads of the batch named by --batch.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("%w: --limit must be positive", shared.ErrInvalidArgument)
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	history := repositories.NewHistory(db)
	asJSON, pretty := cmd.Bool("json"), cmd.Bool("pretty")

	if id := cmd.String("batch"); id != "" {
		batch, err := history.Batches.Get(id)
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: no batch %s", shared.ErrInvalidArgument, id)
		} else if err != nil {
			return err
		}

		downloads, err := history.ForBatch(id)
		if err != nil {
			return err
		}

		if asJSON {
			return r.writeJSON(map[string]any{"batch": batch, "downloads": downloads}, pretty)
		}

		r.writePlainHeader(fmt.Sprintf("%s (%s)", batch.Name, batch.Kind))
		r.writePlain("Source: %s\n", batch.SourceURL)
		r.writePlain("%d succeeded, %d failed of %d\n\n", batch.Succeeded, batch.Failed, batch.Total)
		formatter.WriteDownloads(r.output, downloads)
		return nil
	}

	batches, err := history.Recent(limit)
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(batches, pretty)
	}
	if len(batches) == 0 {
		return r.writePlain("No downloads recorded yet\n")
	}
	formatter.WriteBatches(r.output, batches)
	return nil
}
