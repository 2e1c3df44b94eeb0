package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/formatter"
	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/tasks"
)

// MoviesSearch runs a title search through the search service, or the catalog with --direct.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	r.logger.Info("searching", "query", query, "direct", cmd.Bool("direct"))

	var (
		results []models.MovieSummary
		err     error
	)
	if cmd.Bool("direct") {
		results, err = r.catalog.Search(ctx, query)
	} else {
		results, err = r.browser.Search(ctx, nil, query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		r.writePlain("No movies found for %q\n", query)
		return nil
	}
	r.writePlainHeader(fmt.Sprintf("Results for %q (%s)", query, shared.CountLabel(len(results), "movie")))
	for i, m := range results {
		r.writeMovieRow(i+1, m, "")
	}
	return nil
}

// MoviesBrowse prints every curated slider. A failed slider is reported without failing the others.
func (r *Runner) MoviesBrowse(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	progressCh := make(chan tasks.ProgressUpdate, len(models.Collections))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if !useJSON {
				r.writePlain("📥 %s\n", update.Message)
			}
		}
	}()

	page := r.browser.Home(ctx, progressCh)
	close(progressCh)
	<-done

	if useJSON {
		return r.writeJSON(homeJSON(page), cmd.Bool("pretty"))
	}

	for _, section := range page.Sections {
		title := section.Title
		if section.Badge != "" {
			title = fmt.Sprintf("%s [%s]", title, section.Badge)
		}
		r.writePlain("\n")
		r.writePlainHeader(title)
		if section.Err != nil {
			r.writePlain("  ✗ could not load: %v\n", section.Err)
			continue
		}
		if len(section.Movies) == 0 {
			r.writePlain("  No movies\n")
			continue
		}
		for i, m := range section.Movies {
			r.writeMovieRow(i+1, m, "")
		}
	}

	if failed := page.Failed(); len(failed) == len(page.Sections) && len(failed) > 0 {
		return fmt.Errorf("%w: every slider failed to load", shared.ErrServiceUnavailable)
	}
	return nil
}

type sectionJSON struct {
	Collection models.Collection     `json:"collection"`
	Title      string                `json:"title"`
	Badge      string                `json:"badge,omitempty"`
	Movies     []models.MovieSummary `json:"movies"`
	Error      string                `json:"error,omitempty"`
}

func homeJSON(page *tasks.HomePage) []sectionJSON {
	out := make([]sectionJSON, len(page.Sections))
	for i, s := range page.Sections {
		out[i] = sectionJSON{Collection: s.Collection, Title: s.Title, Badge: s.Badge, Movies: s.Movies}
		if out[i].Movies == nil {
			out[i].Movies = []models.MovieSummary{}
		}
		if s.Err != nil {
			out[i].Error = s.Err.Error()
		}
	}
	return out
}

// MoviesShow prints a movie's detail page.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	page, err := r.browser.Detail(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to load movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detailJSON(page, r.config.Catalog.ImageBaseURL), cmd.Bool("pretty"))
	}

	movie := page.Movie
	r.writePlainHeader(movie.String())
	if movie.Tagline != "" {
		r.writePlain("%s\n", movie.Tagline)
	}
	if movie.ReleaseDate != nil {
		r.writePlain("Released: %s\n", *movie.ReleaseDate)
	}
	if movie.Runtime != nil {
		if rt := shared.FormatRuntime(*movie.Runtime); rt != "" {
			r.writePlain("Runtime:  %s\n", rt)
		}
	}
	if rating := shared.FormatRating(movie.VoteAverage); rating != "" {
		r.writePlain("Rating:   ★ %s\n", rating)
	}
	if genres := movie.GenreNames(); len(genres) > 0 {
		r.writePlain("Genres:   %s\n", strings.Join(genres, ", "))
	}
	if poster := formatter.PosterURL(r.config.Catalog.ImageBaseURL, movie.MovieSummary); poster != "" {
		r.writePlain("Poster:   %s\n", poster)
	}
	if link := page.TrailerURL(); link != "" {
		r.writePlain("Trailer:  %s\n", link)
	}
	if movie.Overview != "" {
		r.writePlainln("%s", movie.Overview)
	}

	if len(page.Cast) > 0 {
		r.writePlainln("Cast:")
		for _, c := range page.Cast {
			if c.Character != "" {
				r.writePlain("  • %s as %s\n", c.Name, c.Character)
			} else {
				r.writePlain("  • %s\n", c.Name)
			}
		}
	}
	if len(page.Similar) > 0 {
		r.writePlainln("Similar:")
		for i, m := range page.Similar {
			r.writeMovieRow(i+1, m, "")
		}
	}
	return nil
}

type detailPageJSON struct {
	models.MovieDetail
	TrailerURL string                `json:"trailer_url,omitempty"`
	PosterURL  string                `json:"poster_url,omitempty"`
	Cast       []models.CastMember   `json:"cast"`
	Similar    []models.MovieSummary `json:"similar"`
}

func detailJSON(page *tasks.DetailPage, imageBaseURL string) detailPageJSON {
	out := detailPageJSON{
		MovieDetail: page.Movie,
		TrailerURL:  page.TrailerURL(),
		PosterURL:   formatter.PosterURL(imageBaseURL, page.Movie.MovieSummary),
		Cast:        page.Cast,
		Similar:     page.Similar,
	}
	if out.Cast == nil {
		out.Cast = []models.CastMember{}
	}
	if out.Similar == nil {
		out.Similar = []models.MovieSummary{}
	}
	return out
}

// MoviesTrailer prints the first YouTube trailer link, opening it with --open.
func (r *Runner) MoviesTrailer(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	videos, err := r.catalog.Videos(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load videos for %d: %w", id, err)
	}

	trailer := models.FindTrailer(videos)
	if trailer == nil {
		r.writePlain("No trailer available for movie %d\n", id)
		return nil
	}

	link := trailer.WatchURL()
	r.writePlain("%s\n", link)
	if cmd.Bool("open") {
		r.logger.Info("opening trailer", "url", link)
		if err := shared.OpenBrowser(link); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}
