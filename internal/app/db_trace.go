package app

import (
	"regexp"
	"strings"
)

const maxTracedSQLLength = 512

var (
	sqlWhitespace = regexp.MustCompile(`\s+`)
	// Single-quoted literals, with '' as the escaped quote.
	sqlStringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace collapses whitespace and masks inline string
// literals so seed statements and invite codes never reach span attributes.
// Bound parameters ($1, $2) are left as they are.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = sqlStringLiteral.ReplaceAllString(query, "'?'")
	query = sqlWhitespace.ReplaceAllString(query, " ")
	if len(query) > maxTracedSQLLength {
		query = query[:maxTracedSQLLength] + "..."
	}
	return query
}
