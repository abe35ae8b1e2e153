package bookmark

import (
	"context"
	"log/slog"

	"gomovies/movie"
	"gomovies/pkg/sentry"
	"gomovies/user"
)

type Service interface {
	IsBookmarked(ctx context.Context, movieID int) bool
	AddBookmark(ctx context.Context, m movie.Movie) error
	RemoveBookmark(ctx context.Context, movieID int) error
	GetUserBookmarks(ctx context.Context) []Bookmark
}

type Repository interface {
	Exists(ctx context.Context, userID string, movieID int) (bool, error)
	// Add stores b. Adding a movie the user already bookmarked is a no-op.
	Add(ctx context.Context, b Bookmark) error
	Remove(ctx context.Context, userID string, movieID int) error
	// ListByUser returns the user's bookmarks, newest first.
	ListByUser(ctx context.Context, userID string) ([]Bookmark, error)
}

// Usecase scopes every operation to the user carried by the context.
// Reads degrade to empty results; writes require a signed-in user.
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

func (uc *Usecase) IsBookmarked(ctx context.Context, movieID int) bool {
	const op = "bookmark.IsBookmarked"

	u, ok := user.FromContext(ctx)
	if !ok {
		return false
	}

	exists, err := uc.r.Exists(ctx, u.ID, movieID)
	if err != nil {
		uc.logger.Error("error checking bookmark", "op", op, "user_id", u.ID, "movie_id", movieID, "error", err)
		sentry.WithExtras(map[string]interface{}{"op": op, "user_id": u.ID, "movie_id": movieID}).Error(err)
		return false
	}
	return exists
}

func (uc *Usecase) AddBookmark(ctx context.Context, m movie.Movie) error {
	u, ok := user.FromContext(ctx)
	if !ok {
		return user.ErrNotLoggedIn
	}

	b := New(u.ID, m)
	if err := b.Validate(); err != nil {
		return err
	}
	return uc.r.Add(ctx, b)
}

func (uc *Usecase) RemoveBookmark(ctx context.Context, movieID int) error {
	u, ok := user.FromContext(ctx)
	if !ok {
		return user.ErrNotLoggedIn
	}
	if movieID <= 0 {
		return movie.ErrInvalidID
	}
	return uc.r.Remove(ctx, u.ID, movieID)
}

func (uc *Usecase) GetUserBookmarks(ctx context.Context) []Bookmark {
	const op = "bookmark.GetUserBookmarks"

	u, ok := user.FromContext(ctx)
	if !ok {
		return []Bookmark{}
	}

	bookmarks, err := uc.r.ListByUser(ctx, u.ID)
	if err != nil {
		uc.logger.Error("error fetching bookmarks", "op", op, "user_id", u.ID, "error", err)
		sentry.WithExtras(map[string]interface{}{"op": op, "user_id": u.ID}).Error(err)
		return []Bookmark{}
	}
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	return bookmarks
}
