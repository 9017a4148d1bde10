package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":  "Lullaby Story API",
		"status":   "ok",
		"provider": s.Config.Provider,
		"model":    s.Config.Model,
		"ready":    s.Config.HasAPIKey(),
	})
}

func (s *Server) handleGetHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
