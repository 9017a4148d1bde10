package story

import (
	"regexp"
	"strings"
)

var (
	leadingFenceRX  = regexp.MustCompile("^\\s*```(?i:json)?\\s*")
	trailingFenceRX = regexp.MustCompile("\\s*```\\s*$")
)

// StripFences removes a leading ``` or ```json marker and a trailing ```
// marker from model output, then trims surrounding whitespace.
func StripFences(s string) string {
	s = leadingFenceRX.ReplaceAllString(s, "")
	s = trailingFenceRX.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractObject returns the text from the first '{' through the last '}'.
// If there is no such span the input is returned unchanged.
func ExtractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// SanitizeSegment prepares interactive story output for parsing.
func SanitizeSegment(raw string) string {
	return StripFences(raw)
}

// SanitizeQuiz prepares quiz output for parsing. Quiz answers are more often
// wrapped in prose, so the outermost object is cut out as well.
func SanitizeQuiz(raw string) string {
	return ExtractObject(StripFences(raw))
}
