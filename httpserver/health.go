package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a backing store can serve requests.
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Reports whether the server and its stores are reachable
// @Tags health
// @Success 200 {object} APIResponse{result=HealthResponse}
// @Failure 503 {object} APIResponse{result=HealthResponse}
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(s.HealthChecks))
	for name := range s.HealthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "OK"}
	for _, name := range names {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}
		if err := s.HealthChecks[name](ctx); err != nil {
			slog.Warn("health check failed", "op", "httpserver.healthCheck", "store", name, "error", err)
			resp.Status = "UNAVAILABLE"
			resp.Checks[name] = "UNAVAILABLE"
			continue
		}
		resp.Checks[name] = "OK"
	}

	if resp.Status != "OK" {
		return c.JSON(http.StatusServiceUnavailable, APIResponse{
			Code:    strconv.Itoa(http.StatusServiceUnavailable),
			Message: http.StatusText(http.StatusServiceUnavailable),
			Result:  resp,
		})
	}
	return writeSuccess(c, http.StatusOK, resp)
}
