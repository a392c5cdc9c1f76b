package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

// WritePages writes one MDX stub per entry into dir, named after its slug,
// plus an index.mdx linking the top level entries. Existing pages are kept.
// It returns the paths it created.
func WritePages(dir string, p *toc.Processed, prefix string) ([]string, error) {
	slugs := Slugs(p, prefix)
	var created []string
	for _, e := range p.FlatEntries {
		path := filepath.Join(dir, filepath.FromSlash(slugs[e.ID])+".mdx")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return created, err
		}
		if err := os.WriteFile(path, []byte(pageStub(e)), 0o644); err != nil {
			return created, err
		}
		created = append(created, path)
	}

	path := filepath.Join(dir, "index.mdx")
	if err := os.WriteFile(path, []byte(indexPage(p.Entries, slugs)), 0o644); err != nil {
		return created, err
	}
	return append(created, path), nil
}

func pageStub(e toc.Entry) string {
	var b strings.Builder
	b.WriteString(frontMatter(e.Title, ""))
	b.WriteString("# ")
	b.WriteString(e.Title)
	b.WriteString("\n\n")
	if n, ok := e.Page(); ok {
		fmt.Fprintf(&b, "Starts on page %d.\n", n)
	}
	return b.String()
}

func indexPage(roots []*toc.Entry, slugs map[string]string) string {
	var b strings.Builder
	b.WriteString(frontMatter("Introduction", "Table of contents"))
	b.WriteString("## Sections\n\n")
	for _, e := range roots {
		fmt.Fprintf(&b, "- [%s](./%s)\n", e.Title, slugs[e.ID])
	}
	return b.String()
}

func frontMatter(title, description string) string {
	s := "---\ntitle: \"" + escapeQuotes(title) + "\"\n"
	if description != "" {
		s += "description: \"" + escapeQuotes(description) + "\"\n"
	}
	return s + "---\n\n"
}

func escapeQuotes(s string) string { return strings.ReplaceAll(s, "\"", "\\\"") }
