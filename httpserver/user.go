package httpserver

import (
	"net/http"

	"gomovies/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/auth/me", s.handleMe, m...)
}

// handleMe godoc
// @Summary Current User
// @Description Profile of the signed-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/me [get]
func (s *Server) handleMe(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	u, err := s.UserService.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newProfileResponse(u))
}
