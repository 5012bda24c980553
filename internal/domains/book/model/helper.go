package model

import "strings"

// ParseTags turns a comma-separated input into an ordered list of
// trimmed, non-empty tags. A blank input (or one that trims down to
// nothing) yields nil, which is stored as NULL rather than an empty
// list.
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil
	}
	return tags
}
