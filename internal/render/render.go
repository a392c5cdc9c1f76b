// Package render writes processed tables of contents as JSON, as an
// indented outline, or as Mintlify docs.json navigation.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

// JSON writes p as indented JSON.
func JSON(w io.Writer, p *toc.Processed) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Outline writes one line per entry, indented two spaces per depth, with
// dot leaders before the page number.
func Outline(w io.Writer, entries []*toc.Entry) error {
	var err error
	toc.Walk(entries, func(e *toc.Entry, depth int) bool {
		if err != nil {
			return false
		}
		line := strings.Repeat("  ", depth-1) + e.Title
		if n, ok := e.Page(); ok {
			line += " .... " + fmt.Sprint(n)
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// Flat writes one line per flat entry: id, level and title.
func Flat(w io.Writer, entries []toc.Entry) error {
	for _, e := range entries {
		page := "-"
		if n, ok := e.Page(); ok {
			page = fmt.Sprint(n)
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.ID, e.Level, page, e.Title); err != nil {
			return err
		}
	}
	return nil
}
