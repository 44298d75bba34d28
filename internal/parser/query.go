package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery trims surrounding whitespace and puts the query in Unicode
// NFC form so equivalent spellings reach TVMaze (and the cache) identically.
// An empty result means there is nothing to search for.
func NormalizeQuery(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
