package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bharatai/studio/internal/auth"
	"github.com/bharatai/studio/internal/config"
	"github.com/bharatai/studio/internal/studio"
)

var (
	promptFlag string
	outputFlag string
	outDirFlag string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full production pipeline from a prompt",
	Run:   runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Story prompt to produce (required)")
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "ALL", "Assets to synthesize: IMAGE, VIDEO, AUDIO, or ALL")
	generateCmd.Flags().StringVar(&outDirFlag, "out-dir", "./out", "Directory to write synthesized assets into")
	_ = generateCmd.MarkFlagRequired("prompt")
}

func runGenerate(cmd *cobra.Command, args []string) {
	output := studio.OutputType(strings.ToUpper(outputFlag))
	if !output.Valid() {
		log.Fatal().Str("output", outputFlag).Msg("Output type must be IMAGE, VIDEO, AUDIO, or ALL")
	}

	ctx := context.Background()
	client := newEngineClient(ctx)

	store := studio.NewStore(config.GetEnvInt("STUDIO_CREDITS", 100))
	orch := studio.NewOrchestrator(client, store, auth.NewTerminalProvisioner(), outDirFlag)

	b, err := orch.DraftBlueprint(ctx, promptFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Blueprint drafting failed")
	}
	log.Info().
		Int("scenes", len(b.Storyboard)).
		Str("subject", b.Subject).
		Str("style", b.VisualStyle).
		Msg("Blueprint drafted")

	result, err := orch.Launch(ctx, output)
	if err != nil {
		log.Fatal().Err(err).Msg("Production failed")
	}

	ev := log.Info().Str("job_id", result.JobID)
	if result.ImagePath != "" {
		ev = ev.Str("image", result.ImagePath)
	}
	if result.AudioPath != "" {
		ev = ev.Str("audio", result.AudioPath)
	}
	if result.VideoPath != "" {
		ev = ev.Str("video", result.VideoPath)
	}
	ev.Msg("Production complete")
}
