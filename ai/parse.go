package ai

import "strings"

// ParseTags turns a comma-separated completion into validated tags.
// Tokens are split on commas and newlines and trimmed of whitespace;
// anything that is not an exact vocabulary member is dropped. At most
// limit tags are returned.
func ParseTags(text string, vocabulary Vocabulary, limit int) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return vocabulary.Filter(tokens, limit)
}
