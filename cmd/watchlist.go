package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/formatter"
	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/tasks"
	"github.com/desertthunder/cinex/internal/watchlist"
)

func parseSortFlag(cmd *cli.Command) (watchlist.SortCriterion, error) {
	c, err := watchlist.ParseSortCriterion(cmd.String("sort"))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}
	return c, nil
}

// WatchlistList prints the watchlist in the requested order.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	criterion, err := parseSortFlag(cmd)
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}
	items := watchlist.ComputeView(store.Items(), criterion)

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Watchlist · %s · %s", shared.CountLabel(len(items), "item"), criterion.Label()))
	if len(items) == 0 {
		r.writePlain("Your watchlist is empty. Add a movie with 'cinex watchlist add <id>'.\n")
		return nil
	}
	for i, m := range items {
		r.writeMovieRow(i+1, m, "")
	}
	return nil
}

// WatchlistAdd fetches a movie from the catalog and adds it, capturing the catalog's rating.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}
	if m, ok := store.Get(id); ok {
		r.writePlain("%s is already in your watchlist\n", m.String())
		return nil
	}

	movie, err := r.fetchSummary(ctx, id)
	if err != nil {
		return err
	}
	if _, err := store.Add(movie); err != nil {
		return fmt.Errorf("failed to add %s: %w", movie.Title, err)
	}

	r.logger.Info("added to watchlist", "id", id, "title", movie.Title)
	r.writePlain("✓ Added %s to your watchlist\n", movie.String())
	return nil
}

// WatchlistRemove removes a movie by id. Removing an absent id is not an error.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}

	movie, ok := store.Get(id)
	if !ok {
		r.writePlain("Movie %d is not in your watchlist\n", id)
		return nil
	}
	if _, err := store.Remove(id); err != nil {
		return fmt.Errorf("failed to remove %s: %w", movie.Title, err)
	}

	r.logger.Info("removed from watchlist", "id", id)
	r.writePlain("✓ Removed %s from your watchlist\n", movie.String())
	return nil
}

// WatchlistToggle removes the movie when saved, otherwise fetches and adds it.
func (r *Runner) WatchlistToggle(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}

	movie, ok := store.Get(id)
	if !ok {
		if movie, err = r.fetchSummary(ctx, id); err != nil {
			return err
		}
	}

	added, err := store.Toggle(movie)
	if err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}
	if added {
		r.writePlain("✓ Added %s to your watchlist\n", movie.String())
	} else {
		r.writePlain("✓ Removed %s from your watchlist\n", movie.String())
	}
	return nil
}

// fetchSummary loads the catalog record for id.
func (r *Runner) fetchSummary(ctx context.Context, id int) (models.MovieSummary, error) {
	detail, err := r.catalog.Details(ctx, id)
	if err != nil {
		return models.MovieSummary{}, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	if detail == nil {
		return models.MovieSummary{}, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}
	return detail.MovieSummary, nil
}

// parseFormats reads the --format flag: a comma separated list or "all".
func parseFormats(value string) ([]formatter.Format, error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") {
		return formatter.Formats, nil
	}

	var formats []formatter.Format
	seen := map[formatter.Format]bool{}
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := formatter.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: --format is empty", shared.ErrInvalidFlag)
	}
	return formats, nil
}

// WatchlistExport writes the watchlist in one or more formats.
//
// A single format goes to --output (default watchlist.{ext}); several formats go to the --output directory
// along with a manifest.json.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	formats, err := parseFormats(cmd.String("format"))
	if err != nil {
		return err
	}
	criterion, err := parseSortFlag(cmd)
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}

	export := &formatter.WatchlistExport{
		Title:        "Watchlist",
		SortedBy:     criterion.Label(),
		ImageBaseURL: r.config.Catalog.ImageBaseURL,
		Items:        watchlist.ComputeView(store.Items(), criterion),
		ExportedAt:   time.Now(),
	}
	output := cmd.String("output")

	if len(formats) == 1 {
		path, err := formatter.WriteExport(export, formats[0], output)
		if err != nil {
			return err
		}
		r.logger.Info("watchlist exported", "format", formats[0], "path", path)
		r.writePlain("✓ Exported %s to %s\n", shared.CountLabel(len(export.Items), "item"), path)
		return nil
	}

	progressCh := make(chan tasks.ProgressUpdate, len(formats))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("📝 %s\n", update.Message)
		}
	}()

	result, err := tasks.ExportWatchlist(ctx, progressCh, export, tasks.ExportOpts{Formats: formats, OutputDir: output})
	close(progressCh)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Items:     %d\n", result.ItemCount)
	r.writePlain("Files:     %d written, %d failed\n", result.SuccessCount, result.FailedCount)
	if result.ManifestFile != "" {
		r.writePlain("Manifest:  %s\n", result.ManifestFile)
	}
	if result.FailedCount > 0 {
		return errors.New("some formats failed to export")
	}
	return nil
}
