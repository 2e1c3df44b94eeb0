package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/repositories"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/tasks"
	"github.com/desertthunder/cinex/internal/watchlist"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	opts       RunnerOpts
	catalog    services.Catalog
	searcher   services.Searcher
	browser    tasks.BrowseEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	store   *watchlist.Store
	closers []io.Closer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog  // defaults to TMDB built from Config.Catalog
	Searcher   services.Searcher // defaults to the search service at Config.Search.URL
	Storage    watchlist.Storage // defaults to the backend named by Config.Storage
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		opts:       opts,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.wire()
	return r
}

// wire builds the services that were not injected, using the current logger.
func (r *Runner) wire() {
	var catalog services.Catalog = r.opts.Catalog
	if catalog == nil {
		catalog = services.NewTMDBService(r.config.Catalog, r.httpClient, r.logger)
	}

	var searcher services.Searcher = r.opts.Searcher
	if searcher == nil && r.config.Search.URL != "" {
		searcher = services.NewSearchService(r.config.Search.URL, r.httpClient, r.logger)
	}

	r.catalog = catalog
	r.searcher = searcher
	r.browser = tasks.NewBrowser(catalog, searcher, r.logger)
}

// SetLogger swaps the logger and rebuilds the services that log through it.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.wire()
}

// watchlistStore opens storage and hydrates the watchlist on first use.
//
// Every command in the process shares the returned store.
func (r *Runner) watchlistStore() (*watchlist.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	storage := r.opts.Storage
	if storage == nil {
		kv, closer, err := repositories.Open(r.config.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		r.closers = append(r.closers, closer)
		storage = kv
	}

	store := watchlist.NewStore(watchlist.NewDurableStore(storage, r.config.Storage.Key).WithLogger(r.logger), r.logger)
	if err := store.Hydrate(); err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	r.store = store
	return store, nil
}

// Close releases the storage opened by [Runner.watchlistStore].
func (r *Runner) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeMovieRow prints one numbered movie line.
func (r *Runner) writeMovieRow(n int, m models.MovieSummary, marker string) {
	line := fmt.Sprintf("%3d. %s", n, m.String())
	if rating := shared.FormatRating(m.VoteAverage); rating != "" {
		line += "  ★ " + rating
	}
	line += fmt.Sprintf("  [id %d]", m.ID)
	if marker != "" {
		line += "  " + marker
	}
	r.writePlain("%s\n", line)
}

// parseMovieID reads a positive movie id from a positional argument.
func parseMovieID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a movie id", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}
