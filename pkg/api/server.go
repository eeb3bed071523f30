// Package api provides the HTTP surface for the marketing site and chat widget.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/chat"
	"github.com/openhouselabs/porchlight/pkg/database"
	"github.com/openhouselabs/porchlight/pkg/services"
)

// Server hosts the REST API.
type Server struct {
	echo *echo.Echo

	db            *database.Client
	orchestrator  *chat.Orchestrator
	sessions      *services.SessionService
	leads         *services.LeadService
	agents        *services.AgentService
	testimonials  *services.TestimonialService
	neighborhoods *services.NeighborhoodService
	logger        *zap.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(
	db *database.Client,
	orchestrator *chat.Orchestrator,
	sessions *services.SessionService,
	leads *services.LeadService,
	agents *services.AgentService,
	testimonials *services.TestimonialService,
	neighborhoods *services.NeighborhoodService,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(securityHeaders())

	s := &Server{
		echo:          e,
		db:            db,
		orchestrator:  orchestrator,
		sessions:      sessions,
		leads:         leads,
		agents:        agents,
		testimonials:  testimonials,
		neighborhoods: neighborhoods,
		logger:        logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.healthHandler)

	api := s.echo.Group("/api")
	api.POST("/chat", s.postChatHandler)
	api.GET("/chat/:sessionId", s.getChatHandler)
	api.POST("/leads", s.createLeadHandler)
	api.GET("/leads", s.listLeadsHandler)
	api.GET("/agents/:agentId", s.getAgentHandler)
	api.GET("/agents/:agentId/testimonials", s.listTestimonialsHandler)
	api.POST("/agents/:agentId/testimonials", s.createTestimonialHandler)
	api.GET("/neighborhoods", s.listNeighborhoodsHandler)
	api.GET("/neighborhoods/:slug", s.getNeighborhoodHandler)
}

// Start begins serving on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// requestLogger logs one line per request with method, URI, status, and latency.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

// securityHeaders sets standard security response headers.
func securityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			return next(c)
		}
	}
}
