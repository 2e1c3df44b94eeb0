// package tasks implements the concurrent catalog reads behind the home, detail and search views.
//
// The core abstraction is Browser, which fans out catalog requests and joins them per view.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/shared"
)

const (
	// CastLimit is how many cast members a detail page shows.
	CastLimit = 8
	// SimilarLimit is how many related movies a detail page shows.
	SimilarLimit = 6
)

// HomeSection is one slider of the home view.
type HomeSection struct {
	Collection models.Collection     // Catalog list backing the slider
	Title      string                // Slider heading
	Badge      string                // Tag shown on every card, may be empty
	Movies     []models.MovieSummary // Empty when the fetch failed
	Err        error                 // Fetch error, contained to this section
}

// HomePage contains every slider in display order.
type HomePage struct {
	Sections []HomeSection
}

// Failed returns the sections whose fetch failed.
func (h *HomePage) Failed() []HomeSection {
	var failed []HomeSection
	for _, s := range h.Sections {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// DetailPage contains everything the detail view renders.
type DetailPage struct {
	Movie   models.MovieDetail
	Trailer *models.Video         // First YouTube trailer, nil when none exists
	Cast    []models.CastMember   // At most [CastLimit]
	Similar []models.MovieSummary // At most [SimilarLimit]
}

// TrailerURL links to the trailer, or "" when there is none.
func (d *DetailPage) TrailerURL() string {
	if d.Trailer == nil {
		return ""
	}
	return d.Trailer.WatchURL()
}

// BrowseEngine defines the read operations of the movie views.
type BrowseEngine interface {
	// Home fetches every curated slider; failures are contained per section.
	Home(ctx context.Context, progress chan<- ProgressUpdate) *HomePage

	// Detail fetches the detail page of a movie, failing if any part fails.
	Detail(ctx context.Context, progress chan<- ProgressUpdate, id int) (*DetailPage, error)

	// Search runs a free text search.
	Search(ctx context.Context, progress chan<- ProgressUpdate, query string) ([]models.MovieSummary, error)
}

// Browser implements [BrowseEngine] over a catalog and a searcher.
type Browser struct {
	catalog  services.Catalog
	searcher services.Searcher
	logger   *log.Logger
}

// NewBrowser creates a new Browser. When searcher is nil, searches go to the catalog.
func NewBrowser(catalog services.Catalog, searcher services.Searcher, logger *log.Logger) *Browser {
	if searcher == nil {
		searcher = catalog
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Browser{
		catalog:  catalog,
		searcher: searcher,
		logger:   shared.WithLogger(logger, "component", "browser"),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (b *Browser) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Home fetches every slider concurrently.
func (b *Browser) Home(ctx context.Context, progress chan<- ProgressUpdate) *HomePage {
	page := &HomePage{Sections: make([]HomeSection, len(models.Collections))}
	total := len(models.Collections)

	if b.catalog == nil {
		for i, c := range models.Collections {
			page.Sections[i] = HomeSection{
				Collection: c, Title: c.Title(), Badge: c.Badge(), Movies: []models.MovieSummary{},
				Err: fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable),
			}
			b.sendProgress(progress, sliderUpdate(i+1, total, page.Sections[i]))
		}
		return page
	}

	var done atomic.Int32
	p := pool.New().WithMaxGoroutines(total)
	for i, c := range models.Collections {
		p.Go(func() {
			section := HomeSection{Collection: c, Title: c.Title(), Badge: c.Badge()}

			movies, err := b.catalog.List(ctx, c)
			if err != nil {
				b.logger.Warn("slider unavailable", "collection", c, "error", err)
				section.Err = err
				movies = []models.MovieSummary{}
			}
			section.Movies = movies
			page.Sections[i] = section

			b.sendProgress(progress, sliderUpdate(int(done.Add(1)), total, section))
		})
	}
	p.Wait()

	return page
}

// Detail fetches details, videos, credits and similar movies for id concurrently.
func (b *Browser) Detail(ctx context.Context, progress chan<- ProgressUpdate, id int) (*DetailPage, error) {
	if b.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	var (
		detail  *models.MovieDetail
		videos  []models.Video
		cast    []models.CastMember
		similar []models.MovieSummary
		done    atomic.Int32
	)
	const total = 4

	step := func(phase Phase) {
		b.sendProgress(progress, detailStepUpdate(phase, int(done.Add(1)), total, id))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := b.catalog.Details(gctx, id)
		if err != nil {
			return fmt.Errorf("details: %w", err)
		}
		detail = d
		step(FetchDetail)
		return nil
	})
	g.Go(func() error {
		v, err := b.catalog.Videos(gctx, id)
		if err != nil {
			return fmt.Errorf("videos: %w", err)
		}
		videos = v
		step(FetchVideos)
		return nil
	})
	g.Go(func() error {
		c, err := b.catalog.Credits(gctx, id)
		if err != nil {
			return fmt.Errorf("credits: %w", err)
		}
		cast = c
		step(FetchCredits)
		return nil
	})
	g.Go(func() error {
		s, err := b.catalog.Similar(gctx, id)
		if err != nil {
			return fmt.Errorf("similar: %w", err)
		}
		similar = s
		step(FetchSimilar)
		return nil
	})

	if err := g.Wait(); err != nil {
		b.logger.Warn("detail page unavailable", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
	}

	page := &DetailPage{
		Movie:   *detail,
		Trailer: models.FindTrailer(videos),
		Cast:    limit(cast, CastLimit),
		Similar: limit(similar, SimilarLimit),
	}
	return page, nil
}

// Search runs query through the searcher.
func (b *Browser) Search(ctx context.Context, progress chan<- ProgressUpdate, query string) ([]models.MovieSummary, error) {
	if b.searcher == nil {
		return nil, fmt.Errorf("%w: search not initialized", shared.ErrServiceUnavailable)
	}

	b.sendProgress(progress, searchUpdate(query, nil))
	results, err := b.searcher.Search(ctx, query)
	if err != nil {
		b.logger.Warn("search failed", "query", query, "error", err)
		return nil, err
	}
	if results == nil {
		results = []models.MovieSummary{}
	}
	b.sendProgress(progress, searchUpdate(query, results))
	return results, nil
}

func limit[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
