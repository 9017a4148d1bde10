package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	SegmentSchema = generateSchema[Segment]()
	QuizSchema    = generateSchema[Quiz]()
)

// JSONObjectResponseFormat asks the provider for any syntactically valid JSON object.
func JSONObjectResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
	}
}

func SegmentResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return structured("story_segment", "One segment of an interactive bedtime story", SegmentSchema)
}

func QuizResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return structured("story_quiz", "Multiple choice comprehension quiz about a story", QuizSchema)
}

func structured(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
