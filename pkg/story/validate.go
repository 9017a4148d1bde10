package story

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"lullaby/pkg/schema"
)

type segmentPayload struct {
	Segment string   `json:"segment"`
	Choices []string `json:"choices"`
	IsFinal *bool    `json:"is_final"`
}

// ParseSegment decodes sanitized model output into a Segment. requireFinal
// demands an explicit is_final field, which continuations must carry.
func ParseSegment(text string, requireFinal bool) (schema.Segment, error) {
	var p segmentPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return schema.Segment{}, fmt.Errorf("%w: segment is not valid JSON: %v", ErrContractViolation, err)
	}
	if strings.TrimSpace(p.Segment) == "" {
		return schema.Segment{}, fmt.Errorf("%w: missing segment text", ErrContractViolation)
	}
	if p.Choices == nil {
		return schema.Segment{}, fmt.Errorf("%w: choices is not an array", ErrContractViolation)
	}
	if requireFinal && p.IsFinal == nil {
		return schema.Segment{}, fmt.Errorf("%w: missing is_final", ErrContractViolation)
	}

	seg := schema.Segment{Segment: p.Segment, Choices: p.Choices}
	if p.IsFinal != nil {
		seg.IsFinal = *p.IsFinal
	}
	return seg, nil
}

type quizPayload struct {
	Questions []questionPayload `json:"questions"`
}

type questionPayload struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *float64 `json:"correctAnswerIndex"`
}

// ParseQuiz decodes sanitized model output into a Quiz and checks that every
// question has enough options and a correct answer index pointing at one.
func ParseQuiz(text string) (schema.Quiz, error) {
	var p quizPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return schema.Quiz{}, fmt.Errorf("%w: quiz is not valid JSON: %v", ErrContractViolation, err)
	}
	if p.Questions == nil {
		return schema.Quiz{}, fmt.Errorf("%w: questions is not an array", ErrContractViolation)
	}
	if len(p.Questions) == 0 {
		return schema.Quiz{}, fmt.Errorf("%w: quiz has no questions", ErrContractViolation)
	}

	quiz := schema.Quiz{Questions: make([]schema.Question, 0, len(p.Questions))}
	for i, q := range p.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return schema.Quiz{}, fmt.Errorf("%w: question %d has no text", ErrContractViolation, i)
		}
		if len(q.Options) < QuizOptions {
			return schema.Quiz{}, fmt.Errorf("%w: question %d has %d options, want at least %d", ErrContractViolation, i, len(q.Options), QuizOptions)
		}
		if q.CorrectAnswerIndex == nil {
			return schema.Quiz{}, fmt.Errorf("%w: question %d has no correctAnswerIndex", ErrContractViolation, i)
		}
		idx := *q.CorrectAnswerIndex
		// compared as float: a huge index would overflow the int conversion
		if idx != math.Trunc(idx) || idx < 0 || idx >= float64(len(q.Options)) {
			return schema.Quiz{}, fmt.Errorf("%w: question %d has correctAnswerIndex %v out of range", ErrContractViolation, i, idx)
		}
		quiz.Questions = append(quiz.Questions, schema.Question{
			Question:           q.Question,
			Options:            q.Options,
			CorrectAnswerIndex: int(idx),
		})
	}
	return quiz, nil
}
