package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lullaby/pkg/schema"
	"lullaby/pkg/story"
)

// POST /api/generate-quiz
//
// Unlike the story routes, provider and output failures degrade to the
// fixed fallback quiz with a 200.
func (s *Server) handlePostGenerateQuiz(c echo.Context) error {
	var req schema.QuizRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	quiz, err := s.Story.Quiz(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, quiz)
	case errors.Is(err, story.ErrConfiguration):
		return failHard(c, err, msgQuiz)
	default:
		return fallBack(c, err)
	}
}
