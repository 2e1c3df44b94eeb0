package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/desertthunder/cinex/internal/formatter"
	"github.com/desertthunder/cinex/internal/shared"
)

// ExportOpts contains configuration for multi-format watchlist exports.
type ExportOpts struct {
	Formats   []formatter.Format // Formats to write (default: all)
	OutputDir string             // Output directory (default: watchlist_export_{epoch})
}

// ExportFileResult is the outcome of one format.
type ExportFileResult struct {
	Format formatter.Format `json:"format"`
	Path   string           `json:"path,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// ExportResult summarizes an [ExportWatchlist] run.
type ExportResult struct {
	OutputDirectory string             `json:"output_directory"`
	ItemCount       int                `json:"item_count"`
	Files           []ExportFileResult `json:"files"`
	SuccessCount    int                `json:"success_count"`
	FailedCount     int                `json:"failed_count"`
	ManifestFile    string             `json:"-"`
}

// ExportWatchlist writes export in every requested format concurrently and records a manifest.json
// listing the files written. A failed format does not stop the others.
func ExportWatchlist(ctx context.Context, progress chan<- ProgressUpdate, export *formatter.WatchlistExport, opts ExportOpts) (*ExportResult, error) {
	if export == nil {
		return nil, fmt.Errorf("%w: nothing to export", shared.ErrInvalidArgument)
	}
	if len(opts.Formats) == 0 {
		opts.Formats = formatter.Formats
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("watchlist_export_%d", time.Now().Unix())
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
		ItemCount:       len(export.Items),
		Files:           make([]ExportFileResult, len(opts.Formats)),
	}

	var (
		mu   sync.Mutex
		done atomic.Int32
	)
	total := len(opts.Formats)
	send := func(update ProgressUpdate) {
		if progress == nil {
			return
		}
		select {
		case progress <- update:
		default:
		}
	}

	p := pool.New().WithContext(ctx)
	for i, f := range opts.Formats {
		p.Go(func(ctx context.Context) error {
			res := ExportFileResult{Format: f}
			if err := ctx.Err(); err != nil {
				res.Error = err.Error()
			} else {
				target := filepath.Join(opts.OutputDir, formatter.DefaultFilename(f))
				path, err := formatter.WriteExport(export, f, target)
				if err != nil {
					res.Error = err.Error()
					send(exportFailedUpdate(int(done.Add(1)), total, string(f), err))
				} else {
					res.Path = path
					send(exportCompletedUpdate(int(done.Add(1)), total, string(f), path))
				}
			}

			mu.Lock()
			result.Files[i] = res
			if res.Error == "" {
				result.SuccessCount++
			} else {
				result.FailedCount++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return result, err
	}

	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("failed to generate manifest: %w", err)
	}
	manifest := filepath.Join(opts.OutputDir, "manifest.json")
	if err := os.WriteFile(manifest, data, 0644); err != nil {
		return result, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.ManifestFile = manifest

	return result, nil
}
