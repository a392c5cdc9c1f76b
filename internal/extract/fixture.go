package extract

import (
	"context"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

// Fixture stands in for real PDF parsing. It ignores its input and always
// returns SampleToc.
type Fixture struct{}

func (Fixture) Extract(ctx context.Context, content []byte) (*toc.Processed, error) {
	return SampleToc(), nil
}

// SampleToc returns a fresh copy of the fixed two chapter sample.
func SampleToc() *toc.Processed {
	ch1 := toc.Entry{ID: "toc-1", Title: "Chapter 1: Introduction", Level: 1, PageNumber: toc.IntPtr(1)}
	s11 := toc.Entry{ID: "toc-2", Title: "Section 1.1", Level: 2, PageNumber: toc.IntPtr(2)}
	s12 := toc.Entry{ID: "toc-3", Title: "Section 1.2", Level: 2, PageNumber: toc.IntPtr(5)}
	ch2 := toc.Entry{ID: "toc-4", Title: "Chapter 2: Methodology", Level: 1, PageNumber: toc.IntPtr(10)}

	root1, child1, child2, root2 := ch1, s11, s12, ch2
	root1.Children = []*toc.Entry{&child1, &child2}

	return &toc.Processed{
		Entries:     []*toc.Entry{&root1, &root2},
		FlatEntries: []toc.Entry{ch1, s11, s12, ch2},
	}
}
