// Package engine wraps the Gemini API calls that turn one user prompt into a
// complete multi-asset production: structured storyboard, still image,
// narration audio, and video.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Gemini model IDs per pipeline step.
const (
	// ModelPromptEngine drafts the structured storyboard blueprint.
	ModelPromptEngine = "gemini-3-flash-preview"
	// ModelImage renders the 9:16 seed still.
	ModelImage = "gemini-2.5-flash-image"
	// ModelVideo is the Veo long-running video model.
	ModelVideo = "veo-3.1-fast-generate-preview"
	// ModelSpeech is the TTS model producing PCM16 24kHz mono.
	ModelSpeech = "gemini-2.5-flash-preview-tts"
	// ModelLive is the realtime native-audio conversation model.
	ModelLive = "gemini-2.5-flash-native-audio-preview-12-2025"
)

// PromptEngineModel returns the blueprint model, resolved from the
// STUDIO_ENGINE_MODEL environment variable when set.
func PromptEngineModel() string {
	if env := os.Getenv("STUDIO_ENGINE_MODEL"); env != "" {
		return env
	}
	return ModelPromptEngine
}

// Defaults for the video operation poll loop. The service gives no progress
// signal, so the loop re-fetches operation state on a fixed cadence and gives
// up after a bounded number of attempts.
const (
	DefaultPollInterval    = 10 * time.Second
	DefaultMaxPollAttempts = 60
)

// Generator is the narrow per-operation contract the orchestrator consumes,
// so the concrete provider can be swapped without touching pipeline logic.
type Generator interface {
	RunPromptEngine(ctx context.Context, userText string) (*Breakdown, error)
	GenerateImage(ctx context.Context, b *Breakdown) (*ImageAsset, error)
	GenerateAudio(ctx context.Context, script, tone string, gender VoiceGender) (*AudioAsset, error)
	GenerateVideo(ctx context.Context, b *Breakdown, seed *ImageAsset) (*VideoAsset, error)
}

// Client is the Gemini-backed Generator.
type Client struct {
	ai *genai.Client

	pollInterval    time.Duration
	maxPollAttempts int
}

// Option configures a Client.
type Option func(*Client)

// WithPollInterval overrides the video poll cadence.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithMaxPollAttempts overrides the video poll attempt budget.
func WithMaxPollAttempts(n int) Option {
	return func(c *Client) { c.maxPollAttempts = n }
}

// NewClient creates a Gemini generation client with the given API key.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	ai, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		ai:              ai,
		pollInterval:    DefaultPollInterval,
		maxPollAttempts: DefaultMaxPollAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}

	log.Debug().
		Dur("poll_interval", c.pollInterval).
		Int("max_poll_attempts", c.maxPollAttempts).
		Msg("Generation client initialized")

	return c, nil
}

// AI exposes the underlying Gemini client for collaborators speaking other
// API surfaces, such as the live audio transport.
func (c *Client) AI() *genai.Client {
	return c.ai
}

// ValidateCredential verifies the API key with a minimal generation call.
func (c *Client) ValidateCredential(ctx context.Context) error {
	resp, err := c.ai.Models.GenerateContent(ctx, PromptEngineModel(), genai.Text("hi"), nil)
	if err != nil {
		return fmt.Errorf("credential validation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return fmt.Errorf("credential validation returned empty response")
	}
	return nil
}
