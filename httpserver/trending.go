package httpserver

import (
	"net/http"
	"strings"

	"gomovies/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterTrendingRoutes(g *echo.Group) {
	g.GET("/trending", s.handleGetTrending)
	g.POST("/trending", s.handleUpdateSearchCount)
}

// handleGetTrending godoc
// @Summary Trending Movies
// @Description Most searched movies, at most five, count descending
// @Tags trending
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/trending [get]
func (s *Server) handleGetTrending(c echo.Context) error {
	if s.TrendingService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "trending service not configured")
	}

	return writeList(c, http.StatusOK, s.TrendingService.GetTrendingMovies(c.Request().Context()))
}

// handleUpdateSearchCount godoc
// @Summary Record Search
// @Description Count a search for query whose top result is movie
// @Tags trending
// @Accept json
// @Produce json
// @Param payload body SearchCountRequest true "Search"
// @Success 202 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/trending [post]
func (s *Server) handleUpdateSearchCount(c echo.Context) error {
	if s.TrendingService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "trending service not configured")
	}

	var req SearchCountRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.TrendingService.UpdateSearchCount(c.Request().Context(), strings.TrimSpace(req.Query), req.Movie.ToMovie())

	return writeSuccess(c, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}
