// Package repositories implements the string-keyed key/value media the watchlist persists to.
//
// Key Implementations:
//   - [KVRepository] : SQLite table keyed by record name, upserted on every write
//   - [FileKV] : One file per key on an [afero.Fs], written through a temp file and rename
//
// Both satisfy watchlist.Storage and are selected by the storage.driver setting through [Open].
package repositories
