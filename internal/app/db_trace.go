package app

import (
	"regexp"
	"strings"
)

// Span attributes have provider-side size limits; long upsert statements get
// clipped rather than dropped.
const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(flat) > maxTracedQueryLength {
		flat = flat[:maxTracedQueryLength] + "..."
	}

	return flat
}
