package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// healthResponse is the body for GET /health.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// healthHandler handles GET /health.
func (s *Server) healthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{
				Status:   "unhealthy",
				Database: err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Database: "up"})
}
