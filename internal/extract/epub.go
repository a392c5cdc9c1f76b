package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/taylorskalyo/goreader/epub"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

const (
	ncxMediaType   = "application/x-dtbncx+xml"
	xhtmlMediaType = "application/xhtml+xml"
)

// EPUB reads the NCX navigation map, falling back to the EPUB 3 nav
// document.
type EPUB struct {
	opts Options
}

func NewEPUB(opts Options) *EPUB {
	return &EPUB{opts: opts.withDefaults()}
}

func (x *EPUB) Extract(ctx context.Context, content []byte) (*toc.Processed, error) {
	r, err := epub.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: epub: %v", ErrUnparseable, err)
	}
	if len(r.Rootfiles) == 0 {
		return nil, fmt.Errorf("%w: epub: no rootfiles found", ErrUnparseable)
	}
	book := r.Rootfiles[0]

	ncx, nav := navItems(book)
	if ncx != nil {
		p, err := readItem(ncx, ncxToc)
		if err == nil && p != nil {
			return p, nil
		}
		x.opts.Log.Debug("NCX unusable, trying nav document", zap.String("href", ncx.HREF), zap.Error(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, item := range nav {
		p, err := readItem(item, navToc)
		if err == nil && p != nil {
			return p, nil
		}
		x.opts.Log.Debug("nav document unusable", zap.String("href", item.HREF), zap.Error(err))
	}
	return nil, ErrNoToc
}

// navItems returns the NCX item and the XHTML items that may hold an EPUB 3
// nav, most likely first.
func navItems(book *epub.Rootfile) (*epub.Item, []*epub.Item) {
	var (
		ncx        *epub.Item
		likely     []*epub.Item
		candidates []*epub.Item
	)
	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		switch item.MediaType {
		case ncxMediaType:
			if ncx == nil {
				ncx = item
			}
		case xhtmlMediaType:
			name := strings.ToLower(path.Base(item.HREF))
			if strings.Contains(name, "nav") || strings.Contains(name, "toc") {
				likely = append(likely, item)
			} else {
				candidates = append(candidates, item)
			}
		}
	}
	return ncx, append(likely, candidates...)
}

func readItem(item *epub.Item, parse func(io.Reader) (*toc.Processed, error)) (*toc.Processed, error) {
	rc, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}

func ncxToc(r io.Reader) (*toc.Processed, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read NCX: %w", err)
	}
	navMap := doc.FindElement("//navMap")
	if navMap == nil {
		return nil, nil
	}

	b := toc.NewBuilder(0)
	var walk func(parent *etree.Element, level int)
	walk = func(parent *etree.Element, level int) {
		for _, np := range parent.SelectElements("navPoint") {
			if label := np.FindElement("./navLabel/text"); label != nil {
				if title := strings.Join(strings.Fields(label.Text()), " "); title != "" {
					b.Add(title, level, nil)
				}
			}
			walk(np, level+1)
		}
	}
	walk(navMap, 1)
	if b.Len() == 0 {
		return nil, nil
	}
	return b.Result(), nil
}

func navToc(r io.Reader) (*toc.Processed, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse nav document: %w", err)
	}
	nav := findTocNav(doc)
	if nav == nil {
		return nil, nil
	}
	b := toc.NewBuilder(0)
	for c := nav.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ol || c.DataAtom == atom.Ul) {
			walkNavList(c, 1, b)
		}
	}
	if b.Len() == 0 {
		return nil, nil
	}
	return b.Result(), nil
}

func findTocNav(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Nav {
		for _, a := range n.Attr {
			if (a.Key == "epub:type" || (a.Namespace == "epub" && a.Key == "type")) && hasToken(a.Val, "toc") {
				return n
			}
			if a.Key == "role" && a.Val == "doc-toc" {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTocNav(c); found != nil {
			return found
		}
	}
	return nil
}

func walkNavList(list *html.Node, level int, b *toc.Builder) {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		var (
			title string
			sub   *html.Node
		)
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.A, atom.Span:
				if title == "" {
					title = strings.Join(strings.Fields(nodeText(c)), " ")
				}
			case atom.Ol, atom.Ul:
				sub = c
			}
		}
		if title != "" {
			b.Add(title, level, nil)
		}
		if sub != nil {
			walkNavList(sub, level+1, b)
		}
	}
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if f == token {
			return true
		}
	}
	return false
}
