package story

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lullaby/pkg/config"
	"lullaby/pkg/inference"
	"lullaby/pkg/schema"
)

type fakeInferencer struct {
	out         string
	err         error
	calls       int
	params      *openai.ChatCompletionNewParams
	prompt      string
	hasDeadline bool
}

func (f *fakeInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	f.calls++
	f.params = params
	f.prompt = user
	_, f.hasDeadline = ctx.Deadline()
	return f.out, f.err
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.APIKey = "sk-test"
	return cfg
}

func TestServiceStory(t *testing.T) {
	inf := &fakeInferencer{out: "C'era una volta una volpe."}
	svc := NewService(inf, testConfig())

	resp, err := svc.Story(context.Background(), storyRequest())
	require.NoError(t, err)
	assert.Equal(t, "C'era una volta una volpe.", resp.Story)
	assert.Equal(t, 1, inf.calls)
	assert.True(t, inf.hasDeadline)
	assert.InDelta(t, 0.7, inf.params.Temperature.Value, 1e-9)
	assert.Nil(t, inf.params.ResponseFormat.OfJSONObject)
	assert.Contains(t, inf.prompt, "tra 1000 e 1500 parole")
}

func TestServiceErrors(t *testing.T) {
	t.Run("no inferencer", func(t *testing.T) {
		_, err := NewService(nil, testConfig()).Story(context.Background(), storyRequest())
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("no api key", func(t *testing.T) {
		inf := &fakeInferencer{out: "storia"}
		_, err := NewService(inf, config.Default()).Quiz(context.Background(), schema.QuizRequest{StoryText: "x"})
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Zero(t, inf.calls)
	})

	t.Run("provider failure", func(t *testing.T) {
		inf := &fakeInferencer{err: errors.New("status 502")}
		_, err := NewService(inf, testConfig()).Story(context.Background(), storyRequest())
		assert.ErrorIs(t, err, ErrUpstream)
		assert.Equal(t, 1, inf.calls)
	})

	t.Run("timeout", func(t *testing.T) {
		inf := &fakeInferencer{err: context.DeadlineExceeded}
		_, err := NewService(inf, testConfig()).Start(context.Background(), storyRequest())
		assert.ErrorIs(t, err, ErrUpstream)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("empty completion", func(t *testing.T) {
		inf := &fakeInferencer{err: inference.ErrEmptyCompletion}
		_, err := NewService(inf, testConfig()).Story(context.Background(), storyRequest())
		assert.ErrorIs(t, err, ErrContractViolation)
	})
}

func TestServiceStart(t *testing.T) {
	inf := &fakeInferencer{out: "```json\n{\"segment\":\"Inizio\",\"choices\":[\"A\",\"B\"],\"is_final\":true,\"segmentCount\":7}\n```"}
	seg, err := NewService(inf, testConfig()).Start(context.Background(), storyRequest())
	require.NoError(t, err)
	assert.Equal(t, schema.Segment{Segment: "Inizio", Choices: []string{"A", "B"}, IsFinal: false, SegmentCount: 1}, seg)
	assert.NotNil(t, inf.params.ResponseFormat.OfJSONObject)
}

func TestServiceContinue(t *testing.T) {
	t.Run("last regular segment", func(t *testing.T) {
		inf := &fakeInferencer{out: `{"segment":"Poi","choices":["A","B","C"],"is_final":false}`}
		seg, err := NewService(inf, testConfig()).Continue(context.Background(), schema.ContinueRequest{
			StoryHistory: "storia", ChosenOption: "A", SegmentCount: 3,
		})
		require.NoError(t, err)
		assert.False(t, seg.IsFinal)
		assert.Len(t, seg.Choices, 3)
		assert.Equal(t, 4, seg.SegmentCount)
		assert.Contains(t, inf.prompt, "Questo è il segmento 3 di 4.")
	})

	t.Run("conclusion", func(t *testing.T) {
		inf := &fakeInferencer{out: `{"segment":"Fine","choices":["ancora"],"is_final":false}`}
		seg, err := NewService(inf, testConfig()).Continue(context.Background(), schema.ContinueRequest{
			StoryHistory: "storia", ChosenOption: "A", SegmentCount: 4,
		})
		require.NoError(t, err)
		assert.True(t, seg.IsFinal)
		assert.Equal(t, []string{}, seg.Choices)
		assert.Equal(t, 5, seg.SegmentCount)
	})

	t.Run("missing counter", func(t *testing.T) {
		inf := &fakeInferencer{out: `{"segment":"Poi","choices":["A"],"is_final":false}`}
		seg, err := NewService(inf, testConfig()).Continue(context.Background(), schema.ContinueRequest{
			StoryHistory: "storia", ChosenOption: "A",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, seg.SegmentCount)
	})

	t.Run("choices missing before the end", func(t *testing.T) {
		inf := &fakeInferencer{out: `{"segment":"Poi","choices":[],"is_final":false}`}
		_, err := NewService(inf, testConfig()).Continue(context.Background(), schema.ContinueRequest{
			StoryHistory: "storia", ChosenOption: "A", SegmentCount: 2,
		})
		assert.ErrorIs(t, err, ErrContractViolation)
	})
}

func TestServiceQuiz(t *testing.T) {
	inf := &fakeInferencer{out: "Ecco il quiz!\n```json\n{\"questions\":[{\"question\":\"Chi?\",\"options\":[\"a\",\"b\",\"c\"],\"correctAnswerIndex\":1}]}\n```"}
	quiz, err := NewService(inf, testConfig()).Quiz(context.Background(), schema.QuizRequest{StoryText: "storia", AgeRange: "6-8"})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswerIndex)
	assert.EqualValues(t, 1000, inf.params.MaxTokens.Value)
	assert.False(t, inf.params.MaxCompletionTokens.Valid())
	assert.Nil(t, inf.params.ResponseFormat.OfJSONObject)
}

func TestServiceQuizTokenLimitPerProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = config.ProviderOpenAI
	inf := &fakeInferencer{out: `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":0}]}`}

	_, err := NewService(inf, cfg).Quiz(context.Background(), schema.QuizRequest{StoryText: "storia"})
	require.NoError(t, err)
	assert.EqualValues(t, 1000, inf.params.MaxCompletionTokens.Value)
	assert.False(t, inf.params.MaxTokens.Valid())
}

func TestServiceStructuredOutputs(t *testing.T) {
	cfg := testConfig()
	cfg.StructuredOutputs = true
	inf := &fakeInferencer{out: `{"segment":"Inizio","choices":["A","B"]}`}

	_, err := NewService(inf, cfg).Start(context.Background(), storyRequest())
	require.NoError(t, err)
	require.NotNil(t, inf.params.ResponseFormat.OfJSONSchema)
	assert.Nil(t, inf.params.ResponseFormat.OfJSONObject)
}
