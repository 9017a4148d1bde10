package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lullaby/pkg/schema"
)

// POST /api/generate-story
func (s *Server) handlePostGenerateStory(c echo.Context) error {
	var req schema.StoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := s.Story.Story(c.Request().Context(), req)
	if err != nil {
		return failHard(c, err, msgStory)
	}
	return c.JSON(http.StatusOK, resp)
}
