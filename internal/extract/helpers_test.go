package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

type pdfLine struct {
	x, y float64
	text string
}

type pdfOutline struct {
	title    string
	children []pdfOutline
}

// buildPDF writes a minimal PDF with one Courier text line per pdfLine and
// an optional outline.
func buildPDF(pages [][]pdfLine, outline []pdfOutline) []byte {
	var objs []string
	reserve := func() int {
		objs = append(objs, "")
		return len(objs)
	}
	add := func(body string) int {
		id := reserve()
		objs[id-1] = body
		return id
	}
	escape := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

	catalog := reserve()
	pagesObj := reserve()
	font := add("<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding" +
		" /FirstChar 32 /LastChar 126 /Widths [" + strings.Repeat("600 ", 95) + "] >>")

	var kids []string
	for _, pg := range pages {
		var cs strings.Builder
		for _, ln := range pg {
			fmt.Fprintf(&cs, "BT /F1 12 Tf %g %g Td (%s) Tj ET\n", ln.x, ln.y, escape.Replace(ln.text))
		}
		content := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", cs.Len(), cs.String()))
		page := add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792]"+
			" /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", pagesObj, font, content))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}
	objs[pagesObj-1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	cat := fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R", pagesObj)
	if len(outline) > 0 {
		var addItems func(items []pdfOutline) (int, int)
		addItems = func(items []pdfOutline) (int, int) {
			ids := make([]int, len(items))
			for i := range items {
				ids[i] = reserve()
			}
			for i, it := range items {
				d := fmt.Sprintf("<< /Title (%s)", escape.Replace(it.title))
				if i+1 < len(ids) {
					d += fmt.Sprintf(" /Next %d 0 R", ids[i+1])
				}
				if len(it.children) > 0 {
					first, last := addItems(it.children)
					d += fmt.Sprintf(" /First %d 0 R /Last %d 0 R", first, last)
				}
				objs[ids[i]-1] = d + " >>"
			}
			return ids[0], ids[len(ids)-1]
		}
		root := reserve()
		first, last := addItems(outline)
		objs[root-1] = fmt.Sprintf("<< /Type /Outlines /First %d 0 R /Last %d 0 R >>", first, last)
		cat += fmt.Sprintf(" /Outlines %d 0 R", root)
	}
	objs[catalog-1] = cat + " >>"

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, catalog, xref)
	return b.Bytes()
}

// buildEPUB zips files into an EPUB container rooted at OEBPS/content.opf.
func buildEPUB(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("application/epub+zip"))
	require.NoError(t, err)

	all := map[string]string{
		"META-INF/container.xml": `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`,
	}
	for k, v := range files {
		all[k] = v
	}
	for name, body := range all {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func opf(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:identifier id="id">urn:uuid:test</dc:identifier>
  </metadata>
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    ` + strings.Join(items, "\n    ") + `
  </manifest>
  <spine>
    <itemref idref="ch1"/>
  </spine>
</package>`
}

const chapterXHTML = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>One</title></head><body><p>Text.</p></body></html>`

// outline renders the forest as indented "title [page]" lines.
func outline(entries []*toc.Entry) []string {
	var out []string
	toc.Walk(entries, func(e *toc.Entry, depth int) bool {
		ln := strings.Repeat("  ", depth-1) + e.Title
		if n, ok := e.Page(); ok {
			ln += fmt.Sprintf(" [%d]", n)
		}
		out = append(out, ln)
		return true
	})
	return out
}
