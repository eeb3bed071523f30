package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// listNeighborhoodsHandler handles GET /api/neighborhoods.
func (s *Server) listNeighborhoodsHandler(c echo.Context) error {
	neighborhoods, err := s.neighborhoods.List(c.Request().Context())
	if err != nil {
		return mapServiceError(s.logger, err)
	}
	return c.JSON(http.StatusOK, neighborhoods)
}

// getNeighborhoodHandler handles GET /api/neighborhoods/:slug.
func (s *Server) getNeighborhoodHandler(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug is required")
	}

	neighborhood, err := s.neighborhoods.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return mapServiceError(s.logger, err)
	}
	return c.JSON(http.StatusOK, neighborhood)
}
