package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/ksuid"

	"lullaby/pkg/config"
	"lullaby/pkg/inference"
	"lullaby/pkg/story"
)

type Server struct {
	Echo   *echo.Echo
	Story  *story.Service
	Config *config.Config
}

// NewServer builds the echo instance. inf may be nil when no API key is
// configured; the generation routes then answer 500 without calling out.
func NewServer(cfg *config.Config, inf inference.Inferencer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	e.Use(contextLogger)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
	}))

	s := &Server{
		Echo:   e,
		Story:  story.NewService(inf, cfg),
		Config: cfg,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.GET("/healthz", s.handleGetHealth)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// every method is routed so that anything but POST gets a 405 with Allow: POST.
	// OPTIONS is the exception: the CORS middleware answers preflights with 204.
	api := s.Echo.Group("/api")
	api.Any("/generate-story", s.handlePostGenerateStory, postOnly, s.requireAPIKey)
	api.Any("/start-interactive-story", s.handlePostStartInteractive, postOnly, s.requireAPIKey)
	api.Any("/continue-story", s.handlePostContinueStory, postOnly, s.requireAPIKey)
	api.Any("/generate-quiz", s.handlePostGenerateQuiz, postOnly, s.requireAPIKey)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr, "provider", s.Config.Provider, "model", s.Config.Model)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}

// contextLogger attaches a request scoped logger carrying the request id.
func contextLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		logger := log.Default().With("request_id", id)
		req := c.Request()
		c.SetRequest(req.WithContext(log.WithContext(req.Context(), logger)))
		return next(c)
	}
}
