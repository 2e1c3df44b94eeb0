package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog and service errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")

	// Watchlist errors
	ErrCorruptState     = fmt.Errorf("stored watchlist is corrupt")
	ErrMalformedRecord  = fmt.Errorf("malformed movie record")
	ErrNotHydrated      = fmt.Errorf("watchlist not hydrated")
	ErrAlreadyHydrated  = fmt.Errorf("watchlist already hydrated")
	ErrStorageWrite     = fmt.Errorf("failed to persist watchlist")
	ErrUnknownSortOrder = fmt.Errorf("unknown sort criterion")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
