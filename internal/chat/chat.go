// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat produces answers for the chat endpoint. Retrieval and
// generation are not wired yet, so every query receives the same
// placeholder answer with its source attribution.
package chat

import (
	"sync"
	"time"

	"github.com/pdiddy/swat-chat/pkg/types"
)

// PlaceholderAnswer is returned for every query until the retrieval pipeline exists.
const PlaceholderAnswer = "This is a placeholder response from Swat Chat. The RAG pipeline will retrieve " +
	"relevant research from arXiv as the primary source and ground it using the SWaT Operation Manual."

// Source labels in priority order.
const (
	SourcePrimary   = "arXiv (primary)"
	SourceSecondary = "SWaT Operation Manual (secondary)"
)

// TimestampLayout is RFC 3339 with fixed microsecond precision so that
// timestamps also sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Service answers chat queries. It is safe for concurrent use.
type Service struct {
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewService returns a service using the wall clock.
func NewService() *Service {
	return &Service{Now: time.Now}
}

// Answer returns the response for query. Successive timestamps from the
// same service never decrease, even if the wall clock steps backwards.
func (s *Service) Answer(query string) types.ChatResponse {
	return types.ChatResponse{
		Answer:    PlaceholderAnswer,
		Sources:   []string{SourcePrimary, SourceSecondary},
		Timestamp: s.timestamp().Format(TimestampLayout),
	}
}

func (s *Service) timestamp() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now().UTC().Truncate(time.Microsecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}
