package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// NumTokens estimates the prompt size with the cl100k encoding. The encoding
// tables are fetched on first use, so callers only ask for it when debugging.
func NumTokens(text string) (int, error) {
	tkm, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}
