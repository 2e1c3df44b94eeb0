// Package server provides HTTP routing, middleware, and the local movie search endpoint.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /health"), so method
// mismatches get a 405 from the mux and path wildcards are read with [http.Request.PathValue].
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
//   - [SearchHandler] : GET /api/movies/search/{query}, the endpoint the app's search client calls
//   - [HealthHandler] : GET /health
//
// # Middleware
//
//   - [RequestID] : Tags each request with a UUID (X-Request-ID) available through [RequestIDFrom]
//   - [AccessLog] : One structured log line per request
//   - [Recoverer] : Turns handler panics into 500 responses
//   - [CORS] : Lets browser clients on other origins call the search endpoint
//
// [Server] owns the [http.Server] lifecycle and shuts down gracefully when its context ends.
package server
