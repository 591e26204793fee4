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

	"github.com/bharatai/studio/internal/config"
	"github.com/bharatai/studio/internal/live"
	"github.com/bharatai/studio/internal/metrics"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Start a realtime voice session with the creative director",
	Long: `Opens a duplex audio conversation with the realtime model: microphone
input is streamed up continuously and the model's speech is played back
gaplessly. Requires ffmpeg and ffplay on PATH. Stop with Ctrl-C.`,
	Run: runLive,
}

func runLive(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	client := newEngineClient(ctx)

	// The player realizes buffers against the same clock the scheduler
	// sequences them on.
	epoch := time.Now()
	clock := func() time.Duration { return time.Since(epoch) }

	player, err := live.NewFFPlayer(clock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start audio playback (is ffplay installed?)")
	}
	defer player.Close()

	capture, err := live.NewFFmpegCapture()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open microphone capture (is ffmpeg installed?)")
	}

	sched := live.NewScheduler(player, clock)
	sess := live.NewSessionWithScheduler(live.NewGeminiDialer(client.AI()), capture, sched)

	met := metrics.New()
	if metricsPort := config.GetEnv("STUDIO_METRICS_PORT", ""); metricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", met.Handler())
		go func() {
			if err := http.ListenAndServe(":"+metricsPort, mux); err != nil {
				log.Error().Err(err).Msg("Metrics endpoint error")
			}
		}()
	}

	if err := sess.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to open live session")
	}
	met.SetLiveSessionsActive(1)
	log.Info().Msg("Live session open - speak into the microphone, Ctrl-C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			sess.Stop()
			met.SetLiveSessionsActive(0)
			log.Info().Msg("Live session stopped")
			return
		case <-ticker.C:
			if sess.State() == live.StateStandby {
				met.SetLiveSessionsActive(0)
				log.Info().Str("status", sess.Status()).Msg("Live session ended")
				return
			}
		}
	}
}
