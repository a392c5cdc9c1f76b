package toc

import "strconv"

// Builder assembles a Processed from entries in line order. Ids are
// assigned sequentially from toc-0, so two builders fed the same entries
// produce identical results.
type Builder struct {
	flat  []Entry
	roots []*Entry
	// chain[i] is the most recently inserted entry at depth i+1.
	chain []*Entry
}

// NewBuilder returns an empty builder. sizeHint preallocates room for
// that many entries.
func NewBuilder(sizeHint int) *Builder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Builder{
		flat:  make([]Entry, 0, sizeHint),
		roots: make([]*Entry, 0, sizeHint),
	}
}

// Add appends an entry. A level below 1 is raised to 1.
func (b *Builder) Add(title string, level int, page *int) *Entry {
	if level < 1 {
		level = 1
	}
	e := &Entry{
		ID:         "toc-" + strconv.Itoa(len(b.flat)),
		Title:      title,
		Level:      level,
		PageNumber: page,
	}
	b.flat = append(b.flat, *e)
	b.attach(e)
	return e
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int { return len(b.flat) }

// Result returns the processed TOC. The builder must not be used after.
func (b *Builder) Result() *Processed {
	return &Processed{Entries: b.roots, FlatEntries: b.flat}
}

func (b *Builder) attach(e *Entry) {
	if e.Level == 1 || len(b.roots) == 0 {
		b.roots = append(b.roots, e)
		b.chain = append(b.chain[:0], e)
		return
	}
	// Parent sits at depth level-1. Entries that skip levels hang off the
	// deepest entry we have.
	depth := e.Level - 1
	if depth > len(b.chain) {
		depth = len(b.chain)
	}
	parent := b.chain[depth-1]
	parent.Children = append(parent.Children, e)
	b.chain = append(b.chain[:depth], e)
}
