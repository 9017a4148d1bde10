package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentSchema(t *testing.T) {
	data, err := json.Marshal(SegmentSchema)
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, false, s["additionalProperties"])
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"segment", "choices", "is_final", "segmentCount"} {
		assert.Contains(t, props, key)
	}
}

func TestResponseFormats(t *testing.T) {
	assert.NotNil(t, JSONObjectResponseFormat().OfJSONObject)

	quiz := QuizResponseFormat()
	require.NotNil(t, quiz.OfJSONSchema)
	assert.Equal(t, "story_quiz", quiz.OfJSONSchema.JSONSchema.Name)
	assert.True(t, quiz.OfJSONSchema.JSONSchema.Strict.Value)
}
