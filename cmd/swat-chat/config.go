package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/swat-chat/pkg/types"
)

const (
	defaultUserAgent = "swat-chat/0.1"
	defaultManualURL = "https://raw.githubusercontent.com/MeeraYasmin/Swat-Chat/main/data/SWaT%20Operation%20Manual.pdf"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.development", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("manual.url", defaultManualURL)
	v.SetDefault("manual.path", "data/SWaT Operation Manual.pdf")
	v.SetDefault("manual.timeout", 30*time.Second)
	v.SetDefault("manual.user_agent", defaultUserAgent)
	v.SetDefault("manual.extractor", string(types.ExtractorPDF))
	v.SetDefault("manual.extract_timeout", 60*time.Second)
	v.SetDefault("manual.container_image", "minidocks/poppler:latest")
	v.SetDefault("manual.cache_path", "data/manual.db")
	v.SetDefault("manual.name", "SWaT Operation Manual")
	v.SetDefault("manual.location", "GitHub (public repo)")
	v.SetDefault("manual.token", "")

	v.SetDefault("search.base_url", "https://export.arxiv.org/api/query")
	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.user_agent", defaultUserAgent)
	v.SetDefault("search.default_max_results", 3)
	v.SetDefault("search.max_results_limit", 25)
	v.SetDefault("search.max_retries", 0)
	v.SetDefault("search.domain.enabled", true)
	v.SetDefault("search.domain.name", "SWaT")
	v.SetDefault("search.domain.expansions", []string{"Secure Water Treatment"})
	v.SetDefault("search.domain.keywords", []string{"cyber physical", "industrial control", "ICS", "water treatment"})
}

// loadConfig maps viper keys onto the component configurations.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Server: types.ServerConfig{
			Port:            v.GetString("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			Mode:            v.GetString("server.mode"),
		},
		Log: types.LogConfig{
			Development: v.GetBool("log.development"),
			Verbosity:   v.GetInt("log.verbosity"),
		},
		Manual: types.ManualConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("manual.timeout"),
				UserAgent: v.GetString("manual.user_agent"),
			},
			URL:            v.GetString("manual.url"),
			Path:           v.GetString("manual.path"),
			Extractor:      types.ExtractorBackend(v.GetString("manual.extractor")),
			ExtractTimeout: v.GetDuration("manual.extract_timeout"),
			ContainerImage: v.GetString("manual.container_image"),
			CachePath:      v.GetString("manual.cache_path"),
			Name:           v.GetString("manual.name"),
			Location:       v.GetString("manual.location"),
			Token:          v.GetString("manual.token"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			BaseURL:           v.GetString("search.base_url"),
			DefaultMaxResults: v.GetInt("search.default_max_results"),
			MaxResultsLimit:   v.GetInt("search.max_results_limit"),
			MaxRetries:        v.GetInt("search.max_retries"),
			Domain: types.DomainScope{
				Enabled:    v.GetBool("search.domain.enabled"),
				Name:       v.GetString("search.domain.name"),
				Expansions: v.GetStringSlice("search.domain.expansions"),
				Keywords:   v.GetStringSlice("search.domain.keywords"),
			},
		},
	}
}
