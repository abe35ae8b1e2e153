package bookmark

import (
	"time"

	"gomovies/errs"
	"gomovies/movie"
)

var ErrTitleRequired = errs.Errorf(errs.EINVALID, "movie title is required")

// Bookmark is a movie saved by a user. A user holds at most one bookmark per movie.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds the bookmark userID saves for m.
func New(userID string, m movie.Movie) Bookmark {
	return Bookmark{
		UserID:    userID,
		MovieID:   m.ID,
		Title:     m.Title,
		PosterURL: movie.PosterURL(m.PosterPath, movie.SizeThumbnail),
	}
}

func (b Bookmark) Validate() error {
	if b.MovieID <= 0 {
		return movie.ErrInvalidID
	}
	if b.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Movie renders the bookmark as a listing card. Rating and release date are
// not stored with bookmarks and stay zero.
func (b Bookmark) Movie() movie.Movie {
	return movie.Movie{
		ID:         b.MovieID,
		Title:      b.Title,
		PosterPath: movie.PosterPathFromURL(b.PosterURL),
	}
}
