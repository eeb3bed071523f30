package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// createLeadHandler handles POST /api/leads, the contact-form intake.
func (s *Server) createLeadHandler(c echo.Context) error {
	var req CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := s.leads.Create(c.Request().Context(), models.CreateLeadInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Interest:      req.Interest,
		Neighborhoods: req.Neighborhoods,
		Message:       req.Message,
		AgentID:       req.AgentID,
		Source:        req.Source,
	})
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusCreated, lead)
}

// listLeadsHandler handles GET /api/leads.
func (s *Server) listLeadsHandler(c echo.Context) error {
	var filters models.LeadFilters

	if v := c.QueryParam("agent_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid agent_id")
		}
		filters.AgentID = id
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit: must be 1-200")
		}
		filters.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		filters.Offset = n
	}

	leads, err := s.leads.List(c.Request().Context(), filters)
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusOK, leads)
}
