package openai

import "strings"

// compactWhitespace collapses runs of whitespace, including the line breaks
// common in spreadsheet cells, into single spaces.
func compactWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripCodeFence removes a markdown code fence some models wrap answers in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.Contains(s[:i], ",") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
