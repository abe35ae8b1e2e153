package httpserver

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gomovies/bookmark"
	"gomovies/errs"
	"gomovies/movie"
	"gomovies/user"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, map[string]interface{}{
		"data": data,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}

// MovieResponse is a movie card.
type MovieResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	PosterURL   string  `json:"poster_url"`
	ReleaseDate string  `json:"release_date"`
	Year        string  `json:"year"`
	VoteAverage float64 `json:"vote_average"`
	Stars       int     `json:"stars"`
}

func newMovieResponse(m movie.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		PosterURL:   m.Thumbnail(),
		ReleaseDate: m.ReleaseDate,
		Year:        m.Year(),
		VoteAverage: m.VoteAverage,
		Stars:       m.Stars(),
	}
}

func newMovieResponses(movies []movie.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, newMovieResponse(m))
	}
	return out
}

// DetailsResponse backs the movie details modal.
type DetailsResponse struct {
	MovieResponse
	Overview      string   `json:"overview"`
	FullPosterURL string   `json:"full_poster_url"`
	Runtime       int      `json:"runtime"`
	RuntimeLabel  string   `json:"runtime_label"`
	Genres        []string `json:"genres"`
	Tagline       string   `json:"tagline,omitempty"`
	Status        string   `json:"status,omitempty"`
	Homepage      string   `json:"homepage,omitempty"`
	IMDBID        string   `json:"imdb_id,omitempty"`
}

func newDetailsResponse(d movie.Details) DetailsResponse {
	return DetailsResponse{
		MovieResponse: newMovieResponse(d.Movie),
		Overview:      d.Overview,
		FullPosterURL: d.FullPoster(),
		Runtime:       d.Runtime,
		RuntimeLabel:  d.RuntimeLabel(),
		Genres:        d.GenreNames(),
		Tagline:       d.Tagline,
		Status:        d.Status,
		Homepage:      d.Homepage,
		IMDBID:        d.IMDBID,
	}
}

// BookmarkResponse renders a bookmark as a movie card.
type BookmarkResponse struct {
	MovieResponse
	BookmarkID string    `json:"bookmark_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func newBookmarkResponses(bs []bookmark.Bookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, BookmarkResponse{
			MovieResponse: newMovieResponse(b.Movie()),
			BookmarkID:    b.ID,
			CreatedAt:     b.CreatedAt,
		})
	}
	return out
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func newProfileResponse(u user.User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DisplayName: u.DisplayName(),
		AvatarURL:   u.AvatarURL,
	}
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
