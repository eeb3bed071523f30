package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// chatErrorResponse is the body returned when reply generation fails.
type chatErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// postChatHandler handles POST /api/chat. One call is one conversation turn:
// the user's message goes in, the persisted session including the assistant
// reply comes back.
func (s *Server) postChatHandler(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := s.orchestrator.HandleTurn(c.Request().Context(), req.SessionID, req.AgentID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, chatErrorResponse{
			Message: "Sorry, something went wrong. Please try again.",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, sess)
}

// getChatHandler handles GET /api/chat/:sessionId. The widget uses it to
// re-hydrate conversation history on page reload.
func (s *Server) getChatHandler(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	sess, err := s.sessions.Get(c.Request().Context(), sessionID)
	if err != nil {
		return mapServiceError(s.logger, err)
	}

	return c.JSON(http.StatusOK, sess)
}
