package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// listTestimonialsHandler handles GET /api/agents/:agentId/testimonials.
// Stored testimonials are merged with live review-source results; a review
// source outage degrades to stored-only rather than failing the request.
func (s *Server) listTestimonialsHandler(c echo.Context) error {
	agentID, err := s.agentIDParam(c)
	if err != nil {
		return err
	}

	agent, err := s.agents.Get(c.Request().Context(), agentID)
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	testimonials, err := s.testimonials.ListForAgent(c.Request().Context(), agent)
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusOK, testimonials)
}

// createTestimonialHandler handles POST /api/agents/:agentId/testimonials.
func (s *Server) createTestimonialHandler(c echo.Context) error {
	agentID, err := s.agentIDParam(c)
	if err != nil {
		return err
	}

	var req CreateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	testimonial, err := s.testimonials.Create(c.Request().Context(), models.CreateTestimonialInput{
		AgentID: agentID,
		Author:  req.Author,
		Text:    req.Text,
		Rating:  req.Rating,
	})
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusCreated, testimonial)
}
