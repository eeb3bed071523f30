package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/chat"
	"github.com/openhouselabs/porchlight/pkg/services"
)

// mapServiceError maps service-layer errors to HTTP error responses.
func mapServiceError(logger *zap.Logger, err error) *echo.HTTPError {
	var validErr *services.ValidationError
	if errors.As(err, &validErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validErr.Error())
	}
	if errors.Is(err, services.ErrNotFound) || errors.Is(err, chat.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	}
	if errors.Is(err, services.ErrAlreadyExists) {
		return echo.NewHTTPError(http.StatusConflict, "resource already exists")
	}

	logger.Error("unexpected service error", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
