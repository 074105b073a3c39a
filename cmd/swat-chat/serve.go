package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/swat-chat/internal/acquire"
	"github.com/pdiddy/swat-chat/internal/chat"
	"github.com/pdiddy/swat-chat/internal/convert"
	"github.com/pdiddy/swat-chat/internal/knowledge"
	"github.com/pdiddy/swat-chat/internal/log"
	"github.com/pdiddy/swat-chat/internal/manual"
	"github.com/pdiddy/swat-chat/internal/search"
	"github.com/pdiddy/swat-chat/internal/secrets"
	"github.com/pdiddy/swat-chat/internal/server"
	"github.com/pdiddy/swat-chat/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bootstrap the manual and run the HTTP API",
	Long: `Serve makes sure the SWaT Operation Manual is present locally, parses it
into pages, and then starts the HTTP API. A failed bootstrap is reported by
/kb-info but does not stop the server.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8000)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func currentConfig() types.Config {
	cfg := loadConfig(viper.GetViper())
	secrets.Apply(&cfg, loadedSecrets)
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := bootstrapManual(ctx, cfg.Manual)

	gin.SetMode(cfg.Server.Mode)
	router := server.New(server.Deps{
		Search:       search.NewArxivClient(&http.Client{}, cfg.Search),
		Chat:         chat.NewService(),
		Manual:       outcome,
		ManualConfig: cfg.Manual,
		SearchConfig: cfg.Search,
	})

	return server.ListenAndServe(ctx, ":"+cfg.Server.Port, router, cfg.Server.ShutdownTimeout)
}

// bootstrapManual builds the bootstrapper from cfg and runs it once. Setup
// failures become a failed outcome so the caller can still start.
func bootstrapManual(ctx context.Context, cfg types.ManualConfig) types.LoadOutcome {
	b := &manual.Bootstrapper{
		Config:  cfg,
		Fetcher: acquire.NewHTTPFetcher(&http.Client{}, cfg),
	}

	ex, err := convert.New(cfg.Extractor, cfg.ContainerImage)
	if err != nil {
		log.Error(err, "configuring page extractor")
		return types.LoadOutcome{Status: types.LoadFailed, Path: cfg.Path, Reason: err.Error()}
	}
	b.Extractor = ex

	if cfg.CachePath != "" {
		store, err := knowledge.NewStore(cfg.CachePath)
		if err != nil {
			log.Error(err, "opening page cache, continuing without it", "path", cfg.CachePath)
		} else {
			defer store.Close()
			b.Cache = store
		}
	}

	return b.Bootstrap(ctx)
}
