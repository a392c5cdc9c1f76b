package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

// PDF reads the document outline when there is one and otherwise looks
// for a printed TOC in the first pages.
type PDF struct {
	opts Options
}

func NewPDF(opts Options) *PDF {
	return &PDF{opts: opts.withDefaults()}
}

func (x *PDF) Extract(ctx context.Context, content []byte) (p *toc.Processed, err error) {
	// rsc.io/pdf panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: pdf: %v", ErrUnparseable, r)
		}
	}()

	doc, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrUnparseable, err)
	}
	log := x.opts.Log.With(zap.Int("pages", doc.NumPage()))

	if p := outlineToc(doc.Outline()); p != nil {
		log.Debug("ToC taken from document outline", zap.Int("entries", len(p.FlatEntries)))
		return p, nil
	}

	lines, err := x.scanPages(ctx, doc, log)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoToc
	}
	return processLines(ctx, lines, x.opts)
}

func outlineToc(o rpdf.Outline) *toc.Processed {
	b := toc.NewBuilder(0)
	var walk func(items []rpdf.Outline, level int)
	walk = func(items []rpdf.Outline, level int) {
		for _, it := range items {
			if title := strings.Join(strings.Fields(it.Title), " "); title != "" {
				b.Add(title, level, nil)
			}
			walk(it.Child, level+1)
		}
	}
	walk(o.Child, 1)
	if b.Len() == 0 {
		return nil
	}
	return b.Result()
}

// scanPages collects lines from the first run of consecutive pages that
// look like a TOC. A page that does not look like one ends the run.
func (x *PDF) scanPages(ctx context.Context, doc *rpdf.Reader, log *zap.Logger) ([]string, error) {
	var lines []string
	started := false
	for i := 1; i <= doc.NumPage() && i <= x.opts.TocPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pl := pageLines(doc.Page(i))
		if toc.IsTocText(strings.Join(pl, "\n")) {
			log.Debug("ToC page found", zap.Int("page", i), zap.Int("lines", len(pl)))
			lines = append(lines, pl...)
			started = true
			continue
		}
		if started {
			break
		}
	}
	return lines, nil
}

type textRow struct {
	y     float64
	items []rpdf.Text
}

// pageLines rebuilds text lines from positioned glyphs. Horizontal offset
// from the leftmost line becomes leading spaces, two per em.
func pageLines(pg rpdf.Page) []string {
	if pg.V.IsNull() {
		return nil
	}
	texts := pg.Content().Text
	if len(texts) == 0 {
		return nil
	}
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].Y > texts[j].Y })

	var rows []*textRow
	for _, t := range texts {
		if n := len(rows); n > 0 && math.Abs(rows[n-1].y-t.Y) <= rowTolerance(t) {
			rows[n-1].items = append(rows[n-1].items, t)
			continue
		}
		rows = append(rows, &textRow{y: t.Y, items: []rpdf.Text{t}})
	}

	minX := math.MaxFloat64
	for _, r := range rows {
		sort.SliceStable(r.items, func(i, j int) bool { return r.items[i].X < r.items[j].X })
		minX = math.Min(minX, r.items[0].X)
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		first := r.items[0]
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", int(math.Round(2*(first.X-minX)/fontSize(first)))))
		prevEnd := first.X
		for i, t := range r.items {
			if i > 0 && t.X-prevEnd > 0.15*fontSize(t) {
				b.WriteByte(' ')
			}
			b.WriteString(t.S)
			prevEnd = t.X + t.W
		}
		if strings.TrimSpace(b.String()) != "" {
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	}
	return out
}

func fontSize(t rpdf.Text) float64 {
	if t.FontSize <= 0 {
		return 10
	}
	return t.FontSize
}

func rowTolerance(t rpdf.Text) float64 { return fontSize(t) / 3 }
