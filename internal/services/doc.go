// Package services implements the HTTP clients the app reads movies from.
//
// # Catalog
//
// [TMDBService] implements [Catalog] against the TMDB v3 API. Requests carry the configured api_key and
// language as query parameters; when a v4 read access token is configured the client sends it as a
// bearer token through [oauth2.StaticTokenSource] instead. A [rate.Limiter] paces outgoing requests so
// the home and detail fan-outs stay under the catalog's request budget.
//
// # Search
//
// [SearchService] calls the local search endpoint (served by `cinex serve`) at
// /api/movies/search/{query}. It accepts either a bare JSON array or a {"results": [...]} envelope.
//
// # Error Handling
//
// Every transport failure, non-2xx status and undecodable body is wrapped with [shared.ErrNetwork].
// A 404 from a movie endpoint additionally wraps [shared.ErrMovieNotFound].
//
// # Record Mapping
//
// Movie objects pass through [models.Normalize]; records missing an id or title are logged and
// dropped so one bad entry never empties a whole list.
package services
