package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tocHeaderRe = regexp.MustCompile(`(?i)^(table of contents|contents)$`)

	// dots, bullets or ellipses running into the trailing page number
	leaderRe  = regexp.MustCompile(`(?:(?:\s*[.\x{2022}\x{00b7}]){2,}|(?:\s*\x{2026})+)\s*(\d+)\s*$`)
	pageGapRe = regexp.MustCompile(`\s+(\d+)\s*$`)
)

// normalizeDotLeaders turns "1.2 Title ....... 12" into "1.2 Title 12".
// Only the run in front of the page number is touched; indentation and
// spacing inside the title are kept.
func normalizeDotLeaders(s string) string {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	indent := s[:len(s)-len(rest)]
	rest = strings.ReplaceAll(rest, "\u00a0", " ")
	rest = leaderRe.ReplaceAllString(rest, " $1")
	rest = pageGapRe.ReplaceAllString(rest, " $1")
	return indent + strings.TrimSpace(rest)
}
