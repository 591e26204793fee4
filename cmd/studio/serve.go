package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bharatai/studio/internal/auth"
	"github.com/bharatai/studio/internal/config"
	"github.com/bharatai/studio/internal/engine"
	"github.com/bharatai/studio/internal/metrics"
	"github.com/bharatai/studio/internal/server"
	"github.com/bharatai/studio/internal/studio"
	"github.com/bharatai/studio/internal/templates"
)

const shutdownTimeout = 10 * time.Second

var (
	portFlag      string
	serveOutFlag  string
	templatesFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the studio HTTP API",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (defaults to PORT env or 8080)")
	serveCmd.Flags().StringVar(&serveOutFlag, "out-dir", "./out", "Directory synthesized assets are written into and served from")
	serveCmd.Flags().StringVar(&templatesFlag, "templates", "", "Optional YAML template catalog to merge with the builtins")
}

func runServe(cmd *cobra.Command, args []string) {
	port := portFlag
	if port == "" {
		port = config.GetEnv("PORT", "8080")
	}

	ctx := context.Background()
	client := newEngineClient(ctx)

	catalogPath := templatesFlag
	if catalogPath == "" {
		catalogPath = config.GetEnv("STUDIO_TEMPLATES", "")
	}
	catalog := templates.Builtin()
	if catalogPath != "" {
		var err error
		catalog, err = templates.Load(catalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", catalogPath).Msg("Failed to load template catalog")
		}
	}

	store := studio.NewStore(config.GetEnvInt("STUDIO_CREDITS", 100))
	met := metrics.New()
	gen := engine.NewInstrumentedGenerator(client, met.ObserveEngineCall)
	orch := studio.NewOrchestrator(gen, store, auth.NewTerminalProvisioner(), serveOutFlag)
	h := server.NewHandler(orch, store, catalog, met)
	router := server.NewRouter(h, met, serveOutFlag)

	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	log.Info().
		Str("port", port).
		Str("out_dir", serveOutFlag).
		Int("credits", store.Credits()).
		Msg("Studio API listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown error")
	}

	log.Info().Msg("Server stopped")
}
