// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [HomeView] : Search box plus one tab per curated slider (and search results when present)
//  2. [DetailView] : Facts, cast, trailer and similar movies for one title
//  3. [WatchlistView] : The saved movies in the selected sort order
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Slider progress flows through a channel from the browse engine. Detail and search responses carry the sequence number of
// the request that produced them, and any response that no longer matches the current request is dropped.
//
// Every view reads the same [watchlist.Store], so toggling a movie anywhere shows up everywhere on the next render.
// Removing from the watchlist view dims the list for the removal delay while the entry is already gone.
package ui
