package trending

import (
	"context"
	"log/slog"
	"strings"

	"gomovies/movie"
	"gomovies/pkg/sentry"
)

type Service interface {
	GetTrendingMovies(ctx context.Context) []Movie
	UpdateSearchCount(ctx context.Context, query string, m movie.Movie)
}

type Repository interface {
	// Increment atomically adds one to the count stored for entry.SearchTerm,
	// inserting entry with count 1 when the term is new.
	Increment(ctx context.Context, entry Movie) error
	// Top returns at most limit records ordered by count descending.
	Top(ctx context.Context, limit int) ([]Movie, error)
}

// Usecase treats every failure as soft: trending data enriches the home
// screen and must never surface as an error.
type Usecase struct {
	r      Repository
	logger *slog.Logger
}

func NewUsecase(r Repository, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{r: r, logger: logger}
}

func (uc *Usecase) GetTrendingMovies(ctx context.Context) []Movie {
	const op = "trending.GetTrendingMovies"

	movies, err := uc.r.Top(ctx, Limit)
	if err != nil {
		uc.logger.Error("error fetching trending movies", "op", op, "error", err)
		sentry.WithExtras(map[string]interface{}{"op": op}).Error(err)
		return []Movie{}
	}
	if len(movies) > Limit {
		movies = movies[:Limit]
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies
}

func (uc *Usecase) UpdateSearchCount(ctx context.Context, query string, m movie.Movie) {
	const op = "trending.UpdateSearchCount"

	query = strings.TrimSpace(query)
	if query == "" || m.ID == 0 {
		return
	}

	if err := uc.r.Increment(ctx, NewEntry(query, m)); err != nil {
		uc.logger.Error("error updating search count",
			"op", op,
			"query", query,
			"movie_id", m.ID,
			"error", err,
		)
		sentry.WithExtras(map[string]interface{}{"op": op, "query": query, "movie_id": m.ID}).Error(err)
	}
}
