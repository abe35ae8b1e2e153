package httpserver

import (
	"net/http"
	"strconv"

	"gomovies/errs"
	"gomovies/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterBookmarkRoutes(g *echo.Group) {
	g.GET("", s.handleListBookmarks)
	g.POST("", s.handleAddBookmark)
	g.GET("/:movieID", s.handleIsBookmarked)
	g.DELETE("/:movieID", s.handleRemoveBookmark)
}

// handleListBookmarks godoc
// @Summary List Bookmarks
// @Description Bookmarks of the signed-in user, newest first. Empty for guests.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Router /api/bookmarks [get]
func (s *Server) handleListBookmarks(c echo.Context) error {
	if s.BookmarkService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "bookmark service not configured")
	}

	bookmarks := s.BookmarkService.GetUserBookmarks(c.Request().Context())
	return writeList(c, http.StatusOK, newBookmarkResponses(bookmarks))
}

// handleIsBookmarked godoc
// @Summary Bookmark Status
// @Description Whether the signed-in user bookmarked the movie. False for guests.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/bookmarks/{movieID} [get]
func (s *Server) handleIsBookmarked(c echo.Context) error {
	if s.BookmarkService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "bookmark service not configured")
	}

	movieID, err := movieIDParam(c)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]bool{
		"bookmarked": s.BookmarkService.IsBookmarked(c.Request().Context(), movieID),
	})
}

// handleAddBookmark godoc
// @Summary Add Bookmark
// @Description Save a movie for the signed-in user. Saving twice is a no-op.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body AddBookmarkRequest true "Movie"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/bookmarks [post]
func (s *Server) handleAddBookmark(c echo.Context) error {
	if s.BookmarkService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "bookmark service not configured")
	}

	var req AddBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := s.BookmarkService.AddBookmark(c.Request().Context(), req.Movie.ToMovie()); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, map[string]string{
		"status": "created",
	})
}

// handleRemoveBookmark godoc
// @Summary Remove Bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/bookmarks/{movieID} [delete]
func (s *Server) handleRemoveBookmark(c echo.Context) error {
	if s.BookmarkService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "bookmark service not configured")
	}

	movieID, err := movieIDParam(c)
	if err != nil {
		return err
	}
	if err := s.BookmarkService.RemoveBookmark(c.Request().Context(), movieID); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

func movieIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("movieID"))
	if err != nil || id <= 0 {
		return 0, movie.ErrInvalidID
	}
	return id, nil
}
