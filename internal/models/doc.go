// Package models defines the movie entities shared by the catalog clients, the watchlist and the UI.
//
// The package contains two categories of types:
//
// 1. Persisted shape: [MovieSummary], the only entity written to the watchlist record.
//
// 2. Detail page DTOs, never persisted:
//   - [MovieDetail] : Summary plus runtime, genres, overview, tagline and backdrop
//   - [CastMember] : Credited actor
//   - [Video] : Trailer/teaser metadata, see [FindTrailer]
//
// Upstream responses arrive as [RawRecord] values and pass through [Normalize] before anything
// else sees them; the untyped shape never leaves this package.
package models
