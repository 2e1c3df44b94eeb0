// Package tasks orchestrates the multi-request catalog operations behind the CLI and TUI.
//
// # Core Operations
//
// [Browser] implements three reads:
//
//  1. [Browser.Home] : Curated sliders
//     - Fetches now playing, upcoming and popular concurrently
//     - A failed slider is logged and rendered empty; the others are unaffected
//
//  2. [Browser.Detail] : Movie detail page
//     - Fetches details, videos, credits and similar movies concurrently
//     - Rejects the whole page if any one fetch fails
//     - Picks the first YouTube trailer and trims cast and similar lists
//
//  3. [Browser.Search] : Free text search through the configured [services.Searcher]
//
// [ExportWatchlist] writes a watchlist snapshot in several formats concurrently and records a manifest.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Updates use select with default so a
// slow or absent reader never blocks the operation.
package tasks
