package httpserver

import (
	"net/http"
	"strings"

	"gomovies/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Popular movies, or movies matching query in relevance order
// @Tags movies
// @Produce json
// @Param query query string false "Search query"
// @Success 200 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	query := strings.TrimSpace(c.QueryParam("query"))
	movies, err := s.MovieService.FetchMovies(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, newMovieResponses(movies))
}

// handleGetMovie godoc
// @Summary Movie Details
// @Description Full record of a single movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	details, err := s.MovieService.FetchMovieDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newDetailsResponse(details))
}
