package toc

// Entry is a single line of a table of contents.
type Entry struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Level      int      `json:"level"`
	PageNumber *int     `json:"pageNumber,omitempty"`
	Children   []*Entry `json:"children,omitempty"`
}

// Processed holds both views of one processing run. FlatEntries are
// snapshots taken before tree building, so their Children is always nil.
type Processed struct {
	Entries     []*Entry `json:"entries"`
	FlatEntries []Entry  `json:"flatEntries"`
}

// Page returns the page number and whether one was recognized.
func (e Entry) Page() (int, bool) {
	if e.PageNumber == nil {
		return 0, false
	}
	return *e.PageNumber, true
}

// IsLeaf reports whether the entry has no children.
func (e Entry) IsLeaf() bool { return len(e.Children) == 0 }

// Depth returns the maximum nesting depth of the forest, 0 when empty.
func (p *Processed) Depth() int {
	deepest := 0
	Walk(p.Entries, func(_ *Entry, depth int) bool {
		if depth > deepest {
			deepest = depth
		}
		return true
	})
	return deepest
}

// Walk visits entries depth-first in line order. depth starts at 1 for
// roots. Returning false from fn skips the entry's children.
func Walk(entries []*Entry, fn func(e *Entry, depth int) bool) {
	var walk func(list []*Entry, depth int)
	walk = func(list []*Entry, depth int) {
		for _, e := range list {
			if fn(e, depth) {
				walk(e.Children, depth+1)
			}
		}
	}
	walk(entries, 1)
}

// IntPtr is a convenience for building entries with page numbers.
func IntPtr(n int) *int { return &n }
