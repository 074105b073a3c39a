// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single outbound call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "swat-chat/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DomainScope describes the fixed clauses AND-ed with every arXiv query.
// The first clause matches Name in titles or abstracts (and each expansion in
// abstracts); the second matches any keyword in abstracts.
type DomainScope struct {
	// Enabled turns the scope on. When false the caller's query is sent alone.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Name is the short domain name (e.g. "SWaT").
	Name string `json:"name" yaml:"name"`

	// Expansions are long forms of Name matched against abstracts
	// (e.g. "Secure Water Treatment").
	Expansions []string `json:"expansions" yaml:"expansions"`

	// Keywords are the alternatives of the second clause.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// SearchConfig holds settings for the arXiv search adapter.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// DefaultMaxResults caps results when the caller does not ask for a count (default 3).
	DefaultMaxResults int `json:"default_max_results" yaml:"default_max_results"`

	// MaxResultsLimit is the largest count a caller may request (default 25).
	MaxResultsLimit int `json:"max_results_limit" yaml:"max_results_limit"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retrying.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Domain is the fixed scope applied to every query.
	Domain DomainScope `json:"domain" yaml:"domain"`
}

// ExtractorBackend identifies the PDF page extraction tool.
type ExtractorBackend string

const (
	ExtractorPDF       ExtractorBackend = "pdf"
	ExtractorPdftotext ExtractorBackend = "pdftotext"
)

// ManualConfig holds settings for the reference manual bootstrap.
type ManualConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the remote location of the manual PDF.
	URL string `json:"url" yaml:"url"`

	// Path is the local file the manual is stored at.
	Path string `json:"path" yaml:"path"`

	// Extractor selects the page extraction backend: pdf or pdftotext.
	Extractor ExtractorBackend `json:"extractor" yaml:"extractor"`

	// ExtractTimeout bounds page extraction. Zero means no bound.
	ExtractTimeout time.Duration `json:"extract_timeout" yaml:"extract_timeout"`

	// ContainerImage is the image used by the pdftotext backend.
	ContainerImage string `json:"container_image" yaml:"container_image"`

	// CachePath is the sqlite page cache. Empty disables caching.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// Name is the display name of the secondary source.
	Name string `json:"name" yaml:"name"`

	// Location describes where the secondary source is hosted.
	Location string `json:"location" yaml:"location"`

	// Token is sent as a bearer token when non-empty.
	Token string `json:"-" yaml:"-"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	Port            string        `json:"port" yaml:"port"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Mode is the gin mode: debug, release or test.
	Mode string `json:"mode" yaml:"mode"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Development bool `json:"development" yaml:"development"`
	Verbosity   int  `json:"verbosity" yaml:"verbosity"`
}

// Config groups all component configurations.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
	Manual ManualConfig `json:"manual" yaml:"manual"`
	Search SearchConfig `json:"search" yaml:"search"`
}
