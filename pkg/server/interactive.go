package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lullaby/pkg/schema"
)

// POST /api/start-interactive-story
func (s *Server) handlePostStartInteractive(c echo.Context) error {
	var req schema.StoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seg, err := s.Story.Start(c.Request().Context(), req)
	if err != nil {
		return failHard(c, err, msgStart)
	}
	return c.JSON(http.StatusOK, seg)
}

// POST /api/continue-story
func (s *Server) handlePostContinueStory(c echo.Context) error {
	var req schema.ContinueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seg, err := s.Story.Continue(c.Request().Context(), req)
	if err != nil {
		return failHard(c, err, msgContinue)
	}
	return c.JSON(http.StatusOK, seg)
}
