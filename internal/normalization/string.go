package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.TrimSpace(input)
	return normalized
}

// ParsePhone strips spaces and a leading "+" so the same number always maps
// to the same document key.
func ParsePhone(input string) string {
	normalized := strings.TrimSpace(input)
	normalized = strings.TrimPrefix(normalized, "+")
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized
}
