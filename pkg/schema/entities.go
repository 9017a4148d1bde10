package schema

// StoryRequest is the body of POST /api/generate-story and, without
// StoryLength, of POST /api/start-interactive-story. Every field is optional;
// blanks are interpolated as they are.
type StoryRequest struct {
	AgeRange      string `json:"ageRange"`
	StoryLength   string `json:"storyLength,omitempty"`
	Theme         string `json:"theme"`
	MainCharacter string `json:"mainCharacter"`
	Setting       string `json:"setting"`
	Emotion       string `json:"emotion"`
	ComplexTheme  string `json:"complexTheme,omitempty"`
	Moral         string `json:"moral,omitempty"`
	ChildName     string `json:"childName,omitempty"`
}

type StoryResponse struct {
	Story string `json:"story"`
}

type ContinueRequest struct {
	StoryHistory string `json:"storyHistory" validate:"notblank"`
	ChosenOption string `json:"chosenOption" validate:"notblank"`
	SegmentCount int    `json:"segmentCount,omitempty"`
}

type QuizRequest struct {
	StoryText string `json:"storyText" validate:"notblank"`
	AgeRange  string `json:"ageRange,omitempty"`
}

// Segment is one unit of an interactive story as returned to the app.
type Segment struct {
	Segment      string   `json:"segment" jsonschema_description:"Story text of this segment, about 150-200 words"`
	Choices      []string `json:"choices" jsonschema_description:"2-3 reader choices; empty for the final segment"`
	IsFinal      bool     `json:"is_final" jsonschema_description:"True only for the last segment of the story"`
	SegmentCount int      `json:"segmentCount" jsonschema_description:"Number of the segment that comes next"`
}

type Quiz struct {
	Questions []Question `json:"questions" jsonschema_description:"Comprehension questions about the story"`
}

type Question struct {
	Question           string   `json:"question" jsonschema_description:"Question text"`
	Options            []string `json:"options" jsonschema_description:"Answer options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" jsonschema_description:"0-based index of the correct option"`
}
