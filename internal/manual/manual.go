// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manual bootstraps the reference manual at startup. It makes sure
// the PDF exists locally, parses it into pages, and reports an explicit
// outcome. Failures never abort startup; they produce a failed outcome.
package manual

import (
	"context"
	"fmt"

	"github.com/pdiddy/swat-chat/internal/acquire"
	"github.com/pdiddy/swat-chat/internal/convert"
	"github.com/pdiddy/swat-chat/internal/knowledge"
	"github.com/pdiddy/swat-chat/internal/log"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// PageCache stores extracted pages per file version.
type PageCache interface {
	Pages(ctx context.Context, src knowledge.Source) ([]types.Page, bool, error)
	Replace(ctx context.Context, src knowledge.Source, pages []types.Page) error
}

// Bootstrapper wires the fetch, cache and extraction steps.
type Bootstrapper struct {
	Config    types.ManualConfig
	Fetcher   acquire.Fetcher
	Extractor convert.PageExtractor

	// Cache is optional.
	Cache PageCache
}

// Bootstrap runs the fetch-and-parse sequence once and returns its outcome.
func (b *Bootstrapper) Bootstrap(ctx context.Context) types.LoadOutcome {
	logger := log.WithValues("path", b.Config.Path)
	out := types.LoadOutcome{Path: b.Config.Path}

	fetched, err := acquire.Ensure(ctx, b.Fetcher, b.Config.URL, b.Config.Path)
	if err != nil {
		return b.fail(out, err)
	}
	out.Fetched = fetched

	pages, fromCache, err := b.pages(ctx)
	if err != nil {
		return b.fail(out, err)
	}
	out.Pages = pages
	out.FromCache = fromCache

	if len(pages) == 0 {
		out.Status = types.LoadEmpty
		logger.Info("manual parsed but contains no pages")
		return out
	}
	out.Status = types.LoadLoaded
	logger.Info("manual loaded", "pages", len(pages), "fetched", fetched, "from_cache", fromCache)
	return out
}

func (b *Bootstrapper) pages(ctx context.Context) ([]types.Page, bool, error) {
	var src knowledge.Source
	if b.Cache != nil {
		var err error
		src, err = knowledge.SourceOf(b.Config.Path)
		if err != nil {
			return nil, false, fmt.Errorf("stat %s: %w", b.Config.Path, err)
		}
		pages, ok, err := b.Cache.Pages(ctx, src)
		switch {
		case err != nil:
			log.Error(err, "reading page cache, extracting instead")
		case ok:
			return pages, true, nil
		}
	}

	if b.Extractor == nil {
		return nil, false, fmt.Errorf("no page extractor configured")
	}
	pages, err := b.extract(ctx)
	if err != nil {
		return nil, false, err
	}

	if b.Cache != nil {
		if err := b.Cache.Replace(ctx, src, pages); err != nil {
			log.Error(err, "writing page cache")
		}
	}
	return pages, false, nil
}

type extraction struct {
	pages []types.Page
	err   error
}

// extract runs the extractor bounded by Config.ExtractTimeout. An extractor
// that ignores cancellation is abandoned when the bound expires.
func (b *Bootstrapper) extract(ctx context.Context) ([]types.Page, error) {
	if b.Config.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Config.ExtractTimeout)
		defer cancel()
	}

	done := make(chan extraction, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extraction{err: fmt.Errorf("extracting %s: %v", b.Config.Path, r)}
			}
		}()
		pages, err := b.Extractor.Extract(ctx, b.Config.Path)
		done <- extraction{pages: pages, err: err}
	}()

	select {
	case res := <-done:
		return res.pages, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("extracting %s: %w", b.Config.Path, ctx.Err())
	}
}

func (b *Bootstrapper) fail(out types.LoadOutcome, err error) types.LoadOutcome {
	log.Error(err, "manual bootstrap failed", "path", b.Config.Path, "url", b.Config.URL)
	out.Status = types.LoadFailed
	out.Pages = nil
	out.FromCache = false
	out.Reason = err.Error()
	return out
}
