package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gosimple/slug"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

// NavOptions control docs.json navigation generation.
type NavOptions struct {
	SlugPrefix string
	Tab        string
	// Group collects top level entries without children.
	Group string
}

// Slugs assigns a unique page slug to every entry id, in line order.
func Slugs(p *toc.Processed, prefix string) map[string]string {
	out := make(map[string]string, len(p.FlatEntries))
	used := map[string]int{}
	for _, e := range p.FlatEntries {
		base := slug.Make(prefix + " " + e.Title)
		if base == "" {
			base = slug.Make(prefix + " " + e.ID)
		}
		s := base
		if n := used[base]; n > 0 {
			s = base + "-" + strconv.Itoa(n+1)
		}
		used[base]++
		out[e.ID] = s
	}
	return out
}

// Navigation builds the docs.json navigation object for p. Roots with
// children become groups; childless roots share one group.
func Navigation(p *toc.Processed, opts NavOptions) map[string]any {
	if opts.Tab == "" {
		opts.Tab = "Documentation"
	}
	if opts.Group == "" {
		opts.Group = "Contents"
	}
	slugs := Slugs(p, opts.SlugPrefix)

	var (
		groups []any
		loose  []any
	)
	flush := func() {
		if len(loose) > 0 {
			groups = append(groups, map[string]any{"group": opts.Group, "pages": loose})
			loose = nil
		}
	}
	for _, e := range p.Entries {
		if e.IsLeaf() {
			loose = append(loose, slugs[e.ID])
			continue
		}
		flush()
		groups = append(groups, map[string]any{
			"group": groupLabel(e),
			"pages": buildPagesRecursive(e, slugs),
		})
	}
	flush()
	if groups == nil {
		groups = []any{}
	}

	return map[string]any{
		"tabs": []any{
			map[string]any{"tab": opts.Tab, "groups": groups},
		},
	}
}

// buildPagesRecursive lists the entry's own page first, then its children:
// leaves as slugs, parents as nested groups.
func buildPagesRecursive(e *toc.Entry, slugs map[string]string) []any {
	pages := []any{slugs[e.ID]}
	for _, c := range e.Children {
		if c.IsLeaf() {
			pages = append(pages, slugs[c.ID])
			continue
		}
		pages = append(pages, map[string]any{
			"group": groupLabel(c),
			"pages": buildPagesRecursive(c, slugs),
		})
	}
	return pages
}

func groupLabel(e *toc.Entry) string {
	if e.Title == "" {
		return e.ID
	}
	return e.Title
}

// WriteDocsJSON creates docs.json at path when missing. An existing file
// only gets its navigation replaced, and its name when siteName is set.
func WriteDocsJSON(path, siteName string, nav map[string]any) error {
	var cfg map[string]any
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&cfg); err != nil {
			return fmt.Errorf("unable to parse %s: %w", path, err)
		}
		if cfg == nil {
			cfg = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist):
		cfg = defaultDocs()
	default:
		return err
	}
	if siteName != "" {
		cfg["name"] = siteName
	}
	cfg["navigation"] = nav

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func defaultDocs() map[string]any {
	return map[string]any{
		"$schema": "https://mintlify.com/docs.json",
		"theme":   "mint",
		"name":    "Documentation",
		"colors": map[string]any{
			"primary": "#16A34A",
			"light":   "#07C983",
			"dark":    "#15803D",
		},
	}
}
