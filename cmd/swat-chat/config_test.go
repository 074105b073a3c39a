package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/swat-chat/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := loadConfig(v)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Manual.Timeout)
	assert.Equal(t, "data/SWaT Operation Manual.pdf", cfg.Manual.Path)
	assert.Equal(t, defaultManualURL, cfg.Manual.URL)
	assert.Equal(t, types.ExtractorPDF, cfg.Manual.Extractor)
	assert.Equal(t, 60*time.Second, cfg.Manual.ExtractTimeout)
	assert.Equal(t, 15*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 3, cfg.Search.DefaultMaxResults)
	assert.Equal(t, 25, cfg.Search.MaxResultsLimit)
	assert.Zero(t, cfg.Search.MaxRetries)
	assert.True(t, cfg.Search.Domain.Enabled)
	assert.Equal(t, "SWaT", cfg.Search.Domain.Name)
	assert.Equal(t, []string{"Secure Water Treatment"}, cfg.Search.Domain.Expansions)
	assert.Len(t, cfg.Search.Domain.Keywords, 4)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swat-chat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
search:
  timeout: 2s
  domain:
    enabled: false
manual:
  extractor: pdftotext
`), 0o644))
	t.Setenv("SWAT_CHAT_MANUAL_PATH", "/srv/manual.pdf")

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("SWAT_CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	cfg := loadConfig(v)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.False(t, cfg.Search.Domain.Enabled)
	assert.Equal(t, types.ExtractorPdftotext, cfg.Manual.Extractor)
	assert.Equal(t, "/srv/manual.pdf", cfg.Manual.Path)
	assert.Equal(t, "SWaT", cfg.Search.Domain.Name)
}
