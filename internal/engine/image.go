package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// BuildImagePrompt composes the single image prompt from the blueprint:
// subject, first scene visuals, overall style, and the vertical qualifier.
func BuildImagePrompt(b *Breakdown) string {
	return fmt.Sprintf("%s, %s, %s, 9:16 vertical portrait, highly realistic cinematic detail",
		b.Subject, b.Storyboard[0].Description, b.VisualStyle)
}

// GenerateImage requests one 9:16 still from the image model. Returns
// ErrNoImagePayload when the response carries no inline image part.
func (c *Client) GenerateImage(ctx context.Context, b *Breakdown) (*ImageAsset, error) {
	prompt := BuildImagePrompt(b)

	log.Debug().Str("model", ModelImage).Int("prompt_length", len(prompt)).Msg("Requesting seed image")

	start := time.Now()
	resp, err := c.ai.Models.GenerateContent(ctx, ModelImage, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "9:16"},
	})
	if err != nil {
		log.Error().Err(err).Msg("Image generation call failed")
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Info().
					Int("bytes", len(part.InlineData.Data)).
					Str("mime", part.InlineData.MIMEType).
					Dur("duration", time.Since(start)).
					Msg("Seed image generated")
				return &ImageAsset{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	log.Warn().Dur("duration", time.Since(start)).Msg("Image response had no inline payload")
	return nil, ErrNoImagePayload
}
