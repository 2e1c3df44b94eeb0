// package repositories provides the key/value storage backends for the watchlist record.
package repositories

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/desertthunder/cinex/internal/shared"
)

// KV is the contract shared by every backend.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}

var (
	_ KV = (*KVRepository)(nil)
	_ KV = (*FileKV)(nil)
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named by cfg.Driver. The returned closer releases the backend's resources.
func Open(cfg shared.StorageConfig) (KV, io.Closer, error) {
	switch cfg.Driver {
	case "", "sqlite":
		db, err := shared.OpenStorageDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewKVRepository(db), db, nil
	case "file":
		fkv, err := NewFileKV(afero.NewOsFs(), cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fkv, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", shared.ErrInvalidConfig, cfg.Driver)
	}
}
