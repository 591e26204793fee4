package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bharatai/studio/internal/assets"
	"github.com/bharatai/studio/internal/jsonutil"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// breakdownSchema is the response schema the service validates blueprint
// JSON against. Field names are the external contract; see Breakdown tags.
var breakdownSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"storyboard": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"description": {Type: genai.TypeString},
					"camera":      {Type: genai.TypeString},
					"lighting":    {Type: genai.TypeString},
					"duration":    {Type: genai.TypeString},
				},
				Required: []string{"description", "camera", "lighting", "duration"},
			},
		},
		"subject":      {Type: genai.TypeString},
		"visual_style": {Type: genai.TypeString},
		"voice": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"gender": {Type: genai.TypeString, Enum: []string{"male", "female"}},
				"accent": {Type: genai.TypeString},
				"text":   {Type: genai.TypeString},
			},
			Required: []string{"gender", "accent", "text"},
		},
		"output_type":       {Type: genai.TypeString, Enum: []string{"video", "image"}},
		"finalSystemPrompt": {Type: genai.TypeString},
	},
	Required: []string{"storyboard", "subject", "visual_style", "voice", "output_type", "finalSystemPrompt"},
}

// RunPromptEngine converts free user text into a complete Breakdown via one
// structured-generation call. The result is all-or-nothing: malformed or
// incomplete responses return ErrBlueprint and no partial blueprint.
func (c *Client) RunPromptEngine(ctx context.Context, userText string) (*Breakdown, error) {
	prompt, err := assets.BlueprintPrompt(userText)
	if err != nil {
		return nil, fmt.Errorf("render blueprint prompt: %w", err)
	}

	model := PromptEngineModel()
	log.Debug().Str("model", model).Int("input_length", len(userText)).Msg("Running prompt engine")

	start := time.Now()
	resp, err := c.ai.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   breakdownSchema,
	})
	if err != nil {
		log.Error().Err(err).Msg("Prompt engine call failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || resp.Text() == "" {
		log.Warn().Dur("duration", time.Since(start)).Msg("Prompt engine returned empty response")
		return nil, fmt.Errorf("%w: empty response", ErrBlueprint)
	}

	breakdown, err := ParseBreakdown(resp.Text())
	if err != nil {
		log.Error().Err(err).Msg("Prompt engine response rejected")
		return nil, err
	}

	log.Info().
		Int("scenes", len(breakdown.Storyboard)).
		Str("output_type", breakdown.OutputType).
		Dur("duration", time.Since(start)).
		Msg("Blueprint drafted")

	return breakdown, nil
}

// ParseBreakdown parses and validates blueprint JSON from raw model output.
func ParseBreakdown(raw string) (*Breakdown, error) {
	b, err := jsonutil.ParseJSON[Breakdown](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlueprint, err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlueprint, err)
	}
	return &b, nil
}
