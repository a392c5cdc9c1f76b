// Package toc turns free-form table of contents text into a flat list and
// a forest of entries, and guesses whether a block of text is a TOC.
package toc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	trailingPageRe = regexp.MustCompile(`\s*(\d+)\s*$`)
	chapterRe      = regexp.MustCompile(`(?i)^chapter\s+\d+`)
	sectionNumRe   = regexp.MustCompile(`^\d+(?:\.\d+)*`)
)

type tocLine struct {
	raw     string
	trimmed string
}

// ProcessText parses raw TOC text. It never fails: empty input gives an
// empty result, and every non-blank line produces exactly one entry.
func ProcessText(text string) *Processed {
	lines := splitLines(text)

	b := NewBuilder(len(lines))
	for _, ln := range lines {
		title, level, page := parseLine(ln)
		b.Add(title, level, page)
	}
	return b.Result()
}

// ProcessLines is ProcessText over lines that are already split.
func ProcessLines(lines []string) *Processed {
	return ProcessText(strings.Join(lines, "\n"))
}

func splitLines(text string) []tocLine {
	var out []tocLine
	for _, raw := range strings.Split(text, "\n") {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		out = append(out, tocLine{raw: raw, trimmed: t})
	}
	return out
}

func parseLine(ln tocLine) (string, int, *int) {
	title, page := splitPageNumber(ln.trimmed)

	level := 1
	if !chapterRe.MatchString(title) {
		level = leadingWhitespace(ln.raw)/2 + 1
		title = strings.TrimLeftFunc(title, unicode.IsSpace)
	}

	// Section numbering wins over both rules above.
	if m := sectionNumRe.FindString(title); m != "" {
		level = strings.Count(m, ".") + 1
		title = strings.TrimSpace(title)
	}

	return title, level, page
}

// splitPageNumber strips a trailing page number. A digit run too large for
// an int is left in the title.
func splitPageNumber(line string) (string, *int) {
	loc := trailingPageRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, nil
	}
	n, err := strconv.Atoi(line[loc[2]:loc[3]])
	if err != nil {
		return line, nil
	}
	return strings.TrimSpace(line[:loc[0]]), &n
}

func leadingWhitespace(s string) int {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	return utf8.RuneCountInString(s[:len(s)-len(rest)])
}
