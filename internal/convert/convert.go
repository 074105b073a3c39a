// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts page-level text from the reference manual PDF.
// Two backends are available: an in-process PDF loader and pdftotext run
// inside a container.
package convert

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"

	"github.com/pdiddy/swat-chat/internal/container"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// PageExtractor turns a PDF file into its ordered page texts.
type PageExtractor interface {
	Extract(ctx context.Context, pdfPath string) ([]types.Page, error)
}

// New returns the extractor for backend. The pdftotext backend needs a
// container runtime with image available locally.
func New(backend types.ExtractorBackend, image string) (PageExtractor, error) {
	switch backend {
	case "", types.ExtractorPDF:
		return PDFExtractor{}, nil
	case types.ExtractorPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextExtractor(rt, image)
	default:
		return nil, fmt.Errorf("unknown extractor backend %q (want %s or %s)",
			backend, types.ExtractorPDF, types.ExtractorPdftotext)
	}
}

// PDFExtractor parses the PDF in-process with the langchaingo PDF loader.
// Every page is returned, including blank ones.
type PDFExtractor struct{}

// Extract loads every page of the PDF at pdfPath. The underlying reader
// panics on some malformed files; those panics are returned as errors.
func (PDFExtractor) Extract(ctx context.Context, pdfPath string) (pages []types.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parsing PDF %s: %v", pdfPath, r)
		}
	}()

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", pdfPath, err)
	}

	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF %s: %w", pdfPath, err)
	}

	pages = make([]types.Page, 0, len(docs))
	for i, d := range docs {
		number := i + 1
		if n, ok := d.Metadata["page"].(int); ok {
			number = n
		}
		pages = append(pages, types.Page{Number: number, Content: d.PageContent})
	}
	return pages, nil
}

// splitPages splits pdftotext output on form feeds. pdftotext terminates
// every page with a form feed, so a trailing empty segment is dropped.
func splitPages(text string) []types.Page {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\f")
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	pages := make([]types.Page, len(parts))
	for i, p := range parts {
		pages[i] = types.Page{Number: i + 1, Content: p}
	}
	return pages
}
