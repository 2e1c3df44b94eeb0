// package services defines the catalog and search clients
package services

import (
	"context"

	"github.com/desertthunder/cinex/internal/models"
)

// Searcher runs free text movie searches.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.MovieSummary, error)
}

// Catalog is the remote movie metadata source.
type Catalog interface {
	Searcher

	// List fetches one of the curated collections (now playing, upcoming, popular).
	List(ctx context.Context, c models.Collection) ([]models.MovieSummary, error)

	// Details fetches the full record for a movie.
	Details(ctx context.Context, id int) (*models.MovieDetail, error)

	// Videos fetches trailers, teasers and clips attached to a movie.
	Videos(ctx context.Context, id int) ([]models.Video, error)

	// Credits fetches the cast of a movie in billing order.
	Credits(ctx context.Context, id int) ([]models.CastMember, error)

	// Similar fetches movies related to id.
	Similar(ctx context.Context, id int) ([]models.MovieSummary, error)
}
