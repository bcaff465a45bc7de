package textutil

import "strings"

// Normalize lowercases and trims a string for comparison. Empty input
// (including whitespace-only) normalizes to "".
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Words splits a normalized string on whitespace.
func Words(s string) []string {
	return strings.Fields(Normalize(s))
}

// WordSet returns the distinct words of a normalized string.
func WordSet(s string) map[string]struct{} {
	ws := Words(s)
	set := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		set[w] = struct{}{}
	}
	return set
}

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
