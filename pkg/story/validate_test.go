package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegment(t *testing.T) {
	t.Run("valid continuation", func(t *testing.T) {
		seg, err := ParseSegment(`{"segment":"Il drago sorrise.","choices":["Vola","Resta"],"is_final":false,"segmentCount":9}`, true)
		require.NoError(t, err)
		assert.Equal(t, "Il drago sorrise.", seg.Segment)
		assert.Equal(t, []string{"Vola", "Resta"}, seg.Choices)
		assert.False(t, seg.IsFinal)
		assert.Zero(t, seg.SegmentCount, "the model's counter is never trusted")
	})

	t.Run("opening may omit is_final", func(t *testing.T) {
		_, err := ParseSegment(`{"segment":"C'era una volta","choices":["A","B"]}`, false)
		assert.NoError(t, err)
	})

	bad := map[string]string{
		"not json":         `Ecco la storia`,
		"missing segment":  `{"choices":["A"],"is_final":false}`,
		"blank segment":    `{"segment":"  ","choices":["A"],"is_final":false}`,
		"missing choices":  `{"segment":"x","is_final":false}`,
		"null choices":     `{"segment":"x","choices":null,"is_final":false}`,
		"choices string":   `{"segment":"x","choices":"A, B","is_final":false}`,
		"missing is_final": `{"segment":"x","choices":["A"]}`,
	}
	for name, text := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSegment(text, true)
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestParseQuiz(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		quiz, err := ParseQuiz(`{"questions":[
			{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":2},
			{"question":"Dove?","options":["a","b","c","d"],"correctAnswerIndex":0}
		]}`)
		require.NoError(t, err)
		require.Len(t, quiz.Questions, 2)
		assert.Equal(t, 2, quiz.Questions[0].CorrectAnswerIndex)
		assert.Len(t, quiz.Questions[1].Options, 4)
	})

	t.Run("integral float index", func(t *testing.T) {
		quiz, err := ParseQuiz(`{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":1.0}]}`)
		require.NoError(t, err)
		assert.Equal(t, 1, quiz.Questions[0].CorrectAnswerIndex)
	})

	bad := map[string]string{
		"not json":        `{"questions":`,
		"no questions":    `{}`,
		"empty questions": `{"questions":[]}`,
		"blank question":  `{"questions":[{"question":"","options":["a","b","c"],"correctAnswerIndex":0}]}`,
		"two options":     `{"questions":[{"question":"Chi?","options":["a","b"],"correctAnswerIndex":0}]}`,
		"missing index":   `{"questions":[{"question":"Chi?","options":["a","b","c"]}]}`,
		"string index":    `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":"0"}]}`,
		"negative index":  `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":-1}]}`,
		"index too big":   `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":3}]}`,
		"fractional":      `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":0.5}]}`,
		"huge index":      `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":1e300}]}`,
		"int64 overflow":  `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":9.3e18}]}`,
	}
	for name, text := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuiz(text)
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestSanitizeThenParse(t *testing.T) {
	quizJSON := `{"questions":[{"question":"Chi?","options":["a","b","c"],"correctAnswerIndex":1}]}`
	want, err := ParseQuiz(SanitizeQuiz(quizJSON))
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + quizJSON + "\n```",
		"Ecco il quiz richiesto:\n" + quizJSON + "\nSpero ti piaccia!",
		"```json\nEcco il quiz:\n" + quizJSON + "\nFine\n```",
	} {
		got, err := ParseQuiz(SanitizeQuiz(wrapped))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	segJSON := `{"segment":"Il gufo parlò.","choices":["Ascolta","Scappa"],"is_final":false}`
	wantSeg, err := ParseSegment(SanitizeSegment(segJSON), true)
	require.NoError(t, err)
	gotSeg, err := ParseSegment(SanitizeSegment("```json\n"+segJSON+"\n```"), true)
	require.NoError(t, err)
	assert.Equal(t, wantSeg, gotSeg)
}
