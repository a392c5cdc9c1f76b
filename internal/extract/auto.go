package extract

import (
	"bytes"
	"context"
	"unicode/utf8"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Format is the kind of content Detect recognized.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatEPUB
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatEPUB:
		return "epub"
	case FormatText:
		return "text"
	}
	return "unknown"
}

// Detect sniffs content by magic bytes. Valid UTF-8 without a known magic
// is reported as text.
func Detect(content []byte) Format {
	switch {
	case bytes.HasPrefix(content, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(content, zipMagic):
		return FormatEPUB
	case utf8.Valid(content):
		return FormatText
	}
	return FormatUnknown
}

// Auto picks an extractor from the content itself. Plain text that looks
// like a TOC is parsed directly.
type Auto struct {
	pdf  *PDF
	epub *EPUB
	opts Options
}

func NewAuto(opts Options) *Auto {
	opts = opts.withDefaults()
	return &Auto{pdf: NewPDF(opts), epub: NewEPUB(opts), opts: opts}
}

func (a *Auto) Extract(ctx context.Context, content []byte) (*toc.Processed, error) {
	switch Detect(content) {
	case FormatPDF:
		a.opts.Log.Debug("Detected PDF content")
		return a.pdf.Extract(ctx, content)
	case FormatEPUB:
		a.opts.Log.Debug("Detected EPUB content")
		return a.epub.Extract(ctx, content)
	case FormatText:
		if toc.IsTocText(string(content)) {
			a.opts.Log.Debug("Detected plain text ToC")
			return ProcessText(ctx, string(content), a.opts)
		}
	}

	var errs error
	for _, x := range []Extractor{a.pdf, a.epub} {
		p, err := x.Extract(ctx, content)
		if err == nil {
			return p, nil
		}
		errs = multierr.Append(errs, err)
	}
	a.opts.Log.Debug("Unrecognized content", zap.Int("size", len(content)), zap.Error(errs))
	return nil, errs
}
