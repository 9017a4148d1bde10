package utils

import (
	"encoding/json"
	"unicode/utf8"
)

// ErrJSON produces the JSON error body returned to the app.
func ErrJSON(msg string) map[string]any {
	return map[string]any{
		"error": msg,
	}
}

// PrettyJSON marshals with indentation.
func PrettyJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// LimitStr returns s truncated to n runes with "..." appended if longer.
func LimitStr(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
