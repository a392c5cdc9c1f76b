// Package extract produces a processed table of contents from book
// content. Fixture is the fixed sample used by the dashboard mocks; PDF
// and EPUB read real files.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/ai"
	"github.com/thywilljoshua/book-toc/internal/toc"
)

var (
	// ErrUnparseable means the content could not be opened as the format.
	ErrUnparseable = errors.New("unparseable content")
	// ErrNoToc means the content opened but no table of contents was found.
	ErrNoToc = errors.New("no table of contents found")
)

// Extractor turns binary book content into a processed TOC.
type Extractor interface {
	Extract(ctx context.Context, content []byte) (*toc.Processed, error)
}

// DefaultTocPages is how many leading pages are scanned for a printed TOC.
const DefaultTocPages = 16

// Options are shared by the real extractors.
type Options struct {
	// TocPages bounds the scan for a printed TOC.
	TocPages int
	// NormalizeLeaders replaces dot leaders and bullets before parsing.
	NormalizeLeaders bool
	// Repairer, when set, rewrites raw text lines before parsing.
	Repairer ai.Repairer
	Log      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.TocPages <= 0 {
		o.TocPages = DefaultTocPages
	}
	if o.Repairer == nil {
		o.Repairer = ai.Noop{}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

// ProcessText parses a plain text TOC with the same cleanup and repair
// steps the extractors apply to printed TOC pages.
func ProcessText(ctx context.Context, text string, opts Options) (*toc.Processed, error) {
	return processLines(ctx, strings.Split(text, "\n"), opts.withDefaults())
}

// processLines runs raw printed TOC lines through leader cleanup, the
// optional repairer and the parser.
func processLines(ctx context.Context, lines []string, opts Options) (*toc.Processed, error) {
	if opts.NormalizeLeaders {
		for i, ln := range lines {
			lines[i] = normalizeDotLeaders(ln)
		}
	}
	lines = dropHeaders(lines)
	if len(lines) == 0 {
		return nil, ErrNoToc
	}
	repaired, err := opts.Repairer.RepairToC(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("unable to repair ToC: %w", err)
	}
	if len(repaired) > 0 {
		lines = repaired
	}
	p := toc.ProcessLines(lines)
	if len(p.FlatEntries) == 0 {
		return nil, ErrNoToc
	}
	return p, nil
}

// dropHeaders removes "Contents" style headings that sit above a TOC.
func dropHeaders(lines []string) []string {
	out := lines[:0]
	for _, ln := range lines {
		if tocHeaderRe.MatchString(strings.TrimSpace(ln)) {
			continue
		}
		out = append(out, ln)
	}
	return out
}
