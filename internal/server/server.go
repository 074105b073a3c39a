// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the chat backend over HTTP. Handlers are stateless
// and read only the dependencies handed to New.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/swat-chat/internal/log"
	"github.com/pdiddy/swat-chat/internal/search"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// PrimarySource names the primary evidence source in search responses.
const PrimarySource = "arXiv"

// Answerer produces chat responses.
type Answerer interface {
	Answer(query string) types.ChatResponse
}

// Deps are the read-only dependencies shared by all handlers.
type Deps struct {
	Search search.Searcher
	Chat   Answerer

	// Manual is the outcome of the startup bootstrap.
	Manual       types.LoadOutcome
	ManualConfig types.ManualConfig
	SearchConfig types.SearchConfig

	// Metrics is optional; nil creates a private registry.
	Metrics *Metrics
}

// Handler serves the HTTP API.
type Handler struct {
	deps    Deps
	metrics *Metrics
}

// NewHandler returns a handler over deps.
func NewHandler(deps Deps) *Handler {
	m := deps.Metrics
	if m == nil {
		m = NewMetrics()
	}
	m.ManualPages.Set(float64(deps.Manual.PageCount()))
	return &Handler{deps: deps, metrics: m}
}

// RegisterRoutes registers the API routes on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/chat", h.Chat)
	r.POST("/arxiv-search", h.ArxivSearch)
	r.GET("/health", h.Health)
	r.GET("/kb-info", h.KBInfo)
	r.GET("/metrics", h.metrics.Handler())
}

// New returns a gin engine with middleware and routes installed.
func New(deps Deps) *gin.Engine {
	h := NewHandler(deps)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(), h.metrics.countRequests())
	h.RegisterRoutes(r)
	return r
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeSearchTimeout     = "SEARCH_TIMEOUT"
	CodeSearchUnavailable = "SEARCH_UNAVAILABLE"
	CodeInternal          = "INTERNAL_ERROR"
)

func sendError(c *gin.Context, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		status, code = http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, search.ErrTimeout):
		status, code = http.StatusGatewayTimeout, CodeSearchTimeout
	case errors.Is(err, search.ErrTransport):
		status, code = http.StatusBadGateway, CodeSearchUnavailable
	default:
		status, code = http.StatusInternalServerError, CodeInternal
	}
	c.Error(err)
	c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

func sendInvalid(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Message: err.Error()})
}

type chatRequest struct {
	// Query is required but may be empty.
	Query *string `json:"query" binding:"required"`
}

// Chat answers a free-text question.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.Chat.Answer(*req.Query))
}

type searchRequest struct {
	Query      *string `json:"query" binding:"required"`
	MaxResults int     `json:"max_results" binding:"min=0"`
}

// SearchResponse is the body of a successful arXiv search.
type SearchResponse struct {
	Query         string               `json:"query"`
	PrimarySource string               `json:"primary_source"`
	Results       []types.SearchResult `json:"results"`
}

// ArxivSearch runs a domain-scoped search and echoes the query.
func (h *Handler) ArxivSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, err)
		return
	}
	query := *req.Query

	start := time.Now()
	results, err := h.deps.Search.Search(c.Request.Context(), query, h.maxResults(req.MaxResults))
	h.metrics.observeSearch(start)

	var serr *search.Error
	if errors.As(err, &serr) {
		h.metrics.SearchErrors.WithLabelValues(string(serr.Kind)).Inc()
	}
	switch {
	case errors.Is(err, search.ErrEmptyResult):
		results = []types.SearchResult{}
	case err != nil:
		log.Error(err, "arXiv search failed", "query", query)
		sendError(c, err)
		return
	}
	if results == nil {
		results = []types.SearchResult{}
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:         query,
		PrimarySource: PrimarySource,
		Results:       results,
	})
}

// maxResults applies the configured default and upper limit.
func (h *Handler) maxResults(requested int) int {
	n := requested
	if n <= 0 {
		n = h.deps.SearchConfig.DefaultMaxResults
	}
	if n <= 0 {
		n = search.DefaultMaxResults
	}
	if limit := h.deps.SearchConfig.MaxResultsLimit; limit > 0 && n > limit {
		n = limit
	}
	return n
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness. It never depends on the manual or arXiv.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// KBInfo describes the loaded secondary source.
type KBInfo struct {
	DocumentsLoaded int              `json:"documents_loaded"`
	SecondarySource string           `json:"secondary_source"`
	SourceLocation  string           `json:"source_location"`
	Status          types.LoadStatus `json:"status"`
	Error           string           `json:"error,omitempty"`
}

// KBInfo reports the page count and status of the manual bootstrap.
func (h *Handler) KBInfo(c *gin.Context) {
	m := h.deps.Manual
	c.JSON(http.StatusOK, KBInfo{
		DocumentsLoaded: m.PageCount(),
		SecondarySource: h.deps.ManualConfig.Name,
		SourceLocation:  h.deps.ManualConfig.Location,
		Status:          m.Status,
		Error:           m.Reason,
	})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully within shutdownTimeout.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
