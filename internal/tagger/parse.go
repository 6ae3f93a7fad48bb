package tagger

import "strings"

// ParseTags splits a model reply into tags.
//
// The reply is split on commas, each piece is trimmed and empty pieces are
// dropped. Order is preserved. An empty reply yields an empty, non-nil slice.
func ParseTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
