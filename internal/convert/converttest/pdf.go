// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package converttest builds small PDF documents for tests. Object offsets
// and the xref table are computed while writing, so the output parses with
// strict readers.
package converttest

import (
	"bytes"
	"fmt"
	"strings"
)

// Build assembles a PDF from object bodies. Object i+1 is objects[i] and
// object 1 must be the document catalog.
func Build(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Stream returns a stream object body holding content.
func Stream(content string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
}

// Pages returns the objects of a document with one page per entry of texts.
// Each page shows its text in Helvetica.
func Pages(texts ...string) []string {
	// 1 catalog, 2 page tree, 3 font, then a page and content pair per text.
	kids := make([]string, len(texts))
	for i := range texts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(texts)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, text := range texts {
		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i)
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects, page, Stream(content))
	}
	return objects
}

// Document returns a valid PDF with one page per entry of texts.
func Document(texts ...string) []byte {
	return Build(Pages(texts...))
}

// CorruptStartxref returns a PDF whose startxref offset points past the end
// of the file.
func CorruptStartxref(text string) []byte {
	doc := Document(text)
	i := bytes.LastIndex(doc, []byte("startxref\n"))
	out := append([]byte{}, doc[:i+len("startxref\n")]...)
	out = append(out, '9')
	return append(out, doc[i+len("startxref\n"):]...)
}

// KidsPointAtFont returns a PDF whose page tree lists the font object as
// its only kid.
func KidsPointAtFont(text string) []byte {
	objects := Pages(text)
	objects[1] = "<< /Type /Pages /Kids [3 0 R] /Count 1 >>"
	return Build(objects)
}
