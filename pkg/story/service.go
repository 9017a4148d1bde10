package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"lullaby/pkg/config"
	"lullaby/pkg/inference"
	"lullaby/pkg/schema"
	"lullaby/pkg/utils"
)

// Service runs the four generation flows. Each call is independent: one
// prompt, one completion, one parse.
type Service struct {
	inf inference.Inferencer
	cfg *config.Config
}

// NewService wires a Service. A nil inferencer is allowed and makes every
// flow fail with ErrConfiguration before anything goes over the network.
func NewService(inf inference.Inferencer, cfg *config.Config) *Service {
	return &Service{inf: inf, cfg: cfg}
}

// Story writes a freeform bedtime story.
func (s *Service) Story(ctx context.Context, req schema.StoryRequest) (schema.StoryResponse, error) {
	logger := log.FromContext(ctx)
	words, known := WordRangeFor(req.StoryLength)
	if !known {
		logger.Warn("unrecognized storyLength, using breve", "storyLength", req.StoryLength)
	}
	logger.Info("generating story",
		"ageRange", req.AgeRange, "storyLength", req.StoryLength, "words", fmt.Sprintf("%d-%d", words.Min, words.Max),
		"theme", req.Theme, "mainCharacter", req.MainCharacter, "childName", req.ChildName != "")

	params := &openai.ChatCompletionNewParams{
		Temperature: openai.Float(s.cfg.Temperature),
	}
	out, err := s.complete(ctx, params, StoryPrompt(req))
	if err != nil {
		return schema.StoryResponse{}, err
	}
	return schema.StoryResponse{Story: out}, nil
}

// Start writes the opening segment of an interactive story.
func (s *Service) Start(ctx context.Context, req schema.StoryRequest) (schema.Segment, error) {
	log.FromContext(ctx).Info("starting interactive story",
		"ageRange", req.AgeRange, "theme", req.Theme, "mainCharacter", req.MainCharacter, "childName", req.ChildName != "")

	return s.segment(ctx, OpeningPrompt(req), OpeningProgress(), false)
}

// Continue writes the segment following the reader's choice.
func (s *Service) Continue(ctx context.Context, req schema.ContinueRequest) (schema.Segment, error) {
	progress := ProgressFrom(req.SegmentCount)
	log.FromContext(ctx).Info("continuing interactive story",
		"segment", progress.Current, "of", MaxSegments, "final", progress.Final,
		"chosenOption", req.ChosenOption, "historyChars", len(req.StoryHistory))

	prompt := ContinuationPrompt(req.StoryHistory, req.ChosenOption, progress.Current, progress.Final)
	return s.segment(ctx, prompt, progress, true)
}

func (s *Service) segment(ctx context.Context, prompt string, progress Progress, requireFinal bool) (schema.Segment, error) {
	params := &openai.ChatCompletionNewParams{
		Temperature:    openai.Float(s.cfg.Temperature),
		ResponseFormat: schema.JSONObjectResponseFormat(),
	}
	if s.cfg.StructuredOutputs {
		params.ResponseFormat = schema.SegmentResponseFormat()
	}

	out, err := s.complete(ctx, params, prompt)
	if err != nil {
		return schema.Segment{}, err
	}

	cleaned := SanitizeSegment(out)
	log.FromContext(ctx).Debug("cleaned segment output", "content", utils.LimitStr(cleaned, 500))

	seg, err := ParseSegment(cleaned, requireFinal)
	if err != nil {
		return schema.Segment{}, err
	}
	if progress.Final {
		log.FromContext(ctx).Info("forcing story conclusion", "segment", progress.Current)
	}
	return progress.Enforce(seg)
}

// Quiz writes a comprehension quiz about storyText.
func (s *Service) Quiz(ctx context.Context, req schema.QuizRequest) (schema.Quiz, error) {
	logger := log.FromContext(ctx)
	logger.Info("generating quiz", "storyText", utils.LimitStr(req.StoryText, 100), "ageRange", req.AgeRange)

	params := &openai.ChatCompletionNewParams{
		Temperature: openai.Float(s.cfg.Temperature),
	}
	// OpenRouter documents max_tokens; OpenAI itself wants max_completion_tokens
	if s.cfg.Provider == config.ProviderOpenRouter {
		params.MaxTokens = openai.Int(int64(s.cfg.QuizMaxTokens))
	} else {
		params.MaxCompletionTokens = openai.Int(int64(s.cfg.QuizMaxTokens))
	}
	if s.cfg.StructuredOutputs {
		params.ResponseFormat = schema.QuizResponseFormat()
	}

	out, err := s.complete(ctx, params, QuizPrompt(req.StoryText, req.AgeRange))
	if err != nil {
		return schema.Quiz{}, err
	}

	quiz, err := ParseQuiz(SanitizeQuiz(out))
	if err != nil {
		logger.Error("quiz output rejected", "error", err, "content", utils.LimitStr(out, 500))
		return schema.Quiz{}, err
	}
	logger.Info("quiz validated", "questions", len(quiz.Questions))
	logger.Debug("quiz", "json", utils.PrettyJSON(quiz))
	return quiz, nil
}

// complete performs the single provider call of a flow under the configured
// deadline and classifies its failure.
func (s *Service) complete(ctx context.Context, params *openai.ChatCompletionNewParams, prompt string) (string, error) {
	if s.inf == nil || !s.cfg.HasAPIKey() {
		return "", fmt.Errorf("%w: provider API key not set", ErrConfiguration)
	}
	logger := log.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if logger.GetLevel() <= log.DebugLevel {
		if n, err := utils.NumTokens(prompt); err == nil {
			logger.Debug("prompt size", "tokens", n, "chars", len(prompt))
		}
	}

	start := time.Now()
	out, err := s.inf.Infer(ctx, params, "", prompt)
	if err != nil {
		if errors.Is(err, inference.ErrEmptyCompletion) {
			return "", fmt.Errorf("%w: %w", ErrContractViolation, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	logger.Info("completion received", "duration", time.Since(start).Round(time.Millisecond), "chars", len(out))
	return out, nil
}
