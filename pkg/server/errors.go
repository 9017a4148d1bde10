package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"lullaby/pkg/story"
	"lullaby/pkg/utils"
)

// Caller facing messages stay generic; details only go to the log.
const (
	msgNotConfigured = "Internal Server Error: API key not configured."
	msgStory         = "Oops! Qualcosa è andato storto durante la creazione della storia. Riprova più tardi."
	msgStart         = "Errore nella creazione della storia interattiva. Riprova."
	msgContinue      = "Errore nella continuazione della storia. Riprova."
	msgQuiz          = "Errore durante la generazione del quiz. Riprova."
	msgInvalidJSON   = "Il corpo della richiesta non è un JSON valido."
)

// handleError renders every error as {"error": "..."}.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			log.FromContext(c.Request().Context()).Debug("http error", "code", code, "internal", he.Internal)
		}
	} else {
		log.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, utils.ErrJSON(msg))
	}
	if err != nil {
		log.Error("writing error response", "error", err)
	}
}

// postOnly rejects every method but POST with a 405 that advertises POST.
func postOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method
		if method != http.MethodPost {
			c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
			return echo.NewHTTPError(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", method))
		}
		return next(c)
	}
}

// requireAPIKey fails the request before the body is even read when the
// provider credential is missing.
func (s *Server) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Config.HasAPIKey() {
			log.FromContext(c.Request().Context()).Error("provider API key is not set", "path", c.Path())
			requestFailures.WithLabelValues(c.Path(), kind(story.ErrConfiguration)).Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, msgNotConfigured)
		}
		return next(c)
	}
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		log.FromContext(c.Request().Context()).Warn("invalid request body", "path", c.Path(), "error", err)
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidJSON).SetInternal(err)
	}
	return c.Validate(req)
}

// failHard maps a generation failure onto an error response. Only the
// configuration error has its own message.
func failHard(c echo.Context, err error, msg string) error {
	k := kind(err)
	log.FromContext(c.Request().Context()).Error("generation failed", "path", c.Path(), "kind", k, "error", err)
	requestFailures.WithLabelValues(c.Path(), k).Inc()

	if errors.Is(err, story.ErrConfiguration) {
		msg = msgNotConfigured
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

// fallBack answers with the fixed quiz instead of an error.
func fallBack(c echo.Context, err error) error {
	k := kind(err)
	log.FromContext(c.Request().Context()).Error("quiz generation failed, serving fallback quiz", "kind", k, "error", err)
	quizFallbacks.WithLabelValues(k).Inc()
	return c.JSON(http.StatusOK, story.FallbackQuiz())
}

func kind(err error) string {
	switch {
	case errors.Is(err, story.ErrConfiguration):
		return "configuration"
	case errors.Is(err, story.ErrInvalidInput):
		return "input"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, story.ErrUpstream):
		return "upstream"
	case errors.Is(err, story.ErrContractViolation):
		return "contract"
	default:
		return "unknown"
	}
}
