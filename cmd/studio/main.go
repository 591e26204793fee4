package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bharatai/studio/internal/auth"
	"github.com/bharatai/studio/internal/config"
	"github.com/bharatai/studio/internal/engine"
	"github.com/bharatai/studio/internal/logging"
)

// rootCmd is the main Cobra command for the studio CLI.
var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "AI creative studio for short-form video production",
	Long: `BharatAI Studio turns a free-text prompt into a complete short-form
production: a structured storyboard blueprint, a 9:16 still image, a
narrated voiceover track, and a Veo-generated video clip.

Examples:
  studio generate --prompt "Mumbai café, woman coding at sunrise" --output ALL
  studio generate -p "Kerala tea plantation at dawn" -o IMAGE --out-dir ./renders
  studio serve --port 8080
  studio live`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
		_ = config.Load()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(liveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngineClient provisions a credential and returns a validated generation
// client.
func newEngineClient(ctx context.Context) *engine.Client {
	prov := auth.NewTerminalProvisioner()
	if !prov.HasCredential() {
		if err := prov.SelectCredential(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to select an API credential")
		}
	}

	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to retrieve API key")
	}

	client, err := engine.NewClient(ctx, apiKey,
		engine.WithPollInterval(config.GetEnvDuration("STUDIO_VIDEO_POLL_INTERVAL", engine.DefaultPollInterval)),
		engine.WithMaxPollAttempts(config.GetEnvInt("STUDIO_VIDEO_POLL_ATTEMPTS", engine.DefaultMaxPollAttempts)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create generation client")
	}

	if err := client.ValidateCredential(ctx); err != nil {
		log.Fatal().Err(err).Msg("API key validation failed")
	}
	log.Info().Msg("API key validation complete - ready for operations")

	return client
}
