package toc

import (
	"regexp"
	"strings"
)

// Thresholds used by IsTocText.
const (
	MinTocLines       = 3
	PageNumberedRatio = 0.5
	MinChapterMarkers = 2
)

var (
	pageNumberedRe  = regexp.MustCompile(`\s\d+\s*$`)
	chapterMarkerRe = regexp.MustCompile(`(?i)chapter|section|part`)
)

// IsTocText reports whether text looks like a table of contents: most
// lines end in a page number, or at least two lines mention a chapter,
// section or part. Fewer than MinTocLines non-blank lines is never a TOC.
func IsTocText(text string) bool {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) < MinTocLines {
		return false
	}

	pageNumbered, chapters := 0, 0
	for _, ln := range lines {
		if pageNumberedRe.MatchString(ln) {
			pageNumbered++
		}
		if chapterMarkerRe.MatchString(ln) {
			chapters++
		}
	}
	return float64(pageNumbered)/float64(len(lines)) > PageNumberedRatio || chapters >= MinChapterMarkers
}
