package watchlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// DefaultKey is the record name used when none is configured.
const DefaultKey = "cine_watchlist"

// Storage is a synchronous string-keyed key/value medium.
type Storage interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key, value string) error
}

// Persister loads and saves full watchlist snapshots.
type Persister interface {
	Load() ([]models.MovieSummary, error)
	Save(items []models.MovieSummary) error
}

// DurableStore serializes the watchlist as a single JSON record in a [Storage].
type DurableStore struct {
	storage Storage
	key     string
	logger  *log.Logger
}

// NewDurableStore creates a DurableStore writing under key, or [DefaultKey] when key is empty.
func NewDurableStore(storage Storage, key string) *DurableStore {
	if key == "" {
		key = DefaultKey
	}
	return &DurableStore{storage: storage, key: key, logger: shared.NewLogger(io.Discard)}
}

// WithLogger sets the logger that reports skipped entries and returns d.
func (d *DurableStore) WithLogger(logger *log.Logger) *DurableStore {
	if logger != nil {
		d.logger = shared.WithLogger(logger, "component", "watchlist", "key", d.key)
	}
	return d
}

// Key returns the record name.
func (d *DurableStore) Key() string {
	return d.key
}

// Load reads the stored watchlist.
//
// An absent or null record yields an empty watchlist. A record that is not a JSON array of objects fails
// with [shared.ErrCorruptState]. Entries without an id or a title are skipped and logged; the rest load.
// Duplicate ids keep the first entry.
func (d *DurableStore) Load() ([]models.MovieSummary, error) {
	value, ok, err := d.storage.Get(d.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", d.key, err)
	}
	if !ok {
		return []models.MovieSummary{}, nil
	}

	raws, err := models.DecodeRawRecords([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCorruptState, err)
	}

	for i, raw := range raws {
		if raw == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", shared.ErrCorruptState, i)
		}
	}

	movies, errs := models.NormalizeAll(raws)
	for _, err := range errs {
		d.logger.Warn("skipping stored entry", "error", err)
	}

	items := make([]models.MovieSummary, 0, len(movies))
	seen := make(map[int]struct{}, len(movies))
	for _, m := range movies {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		items = append(items, m)
	}
	return items, nil
}

// Save writes items as a full snapshot, replacing any prior record.
func (d *DurableStore) Save(items []models.MovieSummary) error {
	if items == nil {
		items = []models.MovieSummary{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	if err := d.storage.Set(d.key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}
