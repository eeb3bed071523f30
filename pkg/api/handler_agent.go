package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) agentIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("agentId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid agent id")
	}
	return id, nil
}

// getAgentHandler handles GET /api/agents/:agentId.
func (s *Server) getAgentHandler(c echo.Context) error {
	agentID, err := s.agentIDParam(c)
	if err != nil {
		return err
	}

	agent, err := s.agents.Get(c.Request().Context(), agentID)
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusOK, agent)
}
