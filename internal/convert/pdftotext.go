// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/swat-chat/internal/container"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// pdftotextCommand reads the PDF from stdin and writes layout text to
// stdout, one form feed after each page.
var pdftotextCommand = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextExtractor pipes the PDF through pdftotext inside a container.
type PdftotextExtractor struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextExtractor verifies that image exists in rt before returning.
func NewPdftotextExtractor(rt container.Runtime, image string) (*PdftotextExtractor, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextExtractor{runtime: rt, image: image}, nil
}

// Extract returns one page per form-feed separated block of output.
func (p *PdftotextExtractor) Extract(ctx context.Context, pdfPath string) ([]types.Page, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(ctx, p.image, pdftotextCommand, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", pdfPath, err)
	}
	return splitPages(out.String()), nil
}
