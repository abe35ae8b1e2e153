package movie

import (
	"context"
	"strconv"
	"strings"
)

type Service interface {
	FetchMovies(ctx context.Context, query string) ([]Movie, error)
	FetchMovieDetails(ctx context.Context, id string) (Details, error)
}

// Catalog is the remote movie-metadata source.
type Catalog interface {
	Discover(ctx context.Context) ([]Movie, error)
	Search(ctx context.Context, query string) ([]Movie, error)
	Details(ctx context.Context, id int) (Details, error)
}

type Usecase struct {
	c Catalog
}

func NewUsecase(c Catalog) *Usecase {
	return &Usecase{c: c}
}

// FetchMovies returns the popular listing for an empty query and the
// catalog's relevance-ordered search results otherwise.
func (uc *Usecase) FetchMovies(ctx context.Context, query string) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.c.Discover(ctx)
	}
	return uc.c.Search(ctx, query)
}

func (uc *Usecase) FetchMovieDetails(ctx context.Context, id string) (Details, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n <= 0 {
		return Details{}, ErrInvalidID
	}
	return uc.c.Details(ctx, n)
}
