package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// VoiceName maps a narration gender to its prebuilt voice identifier.
func VoiceName(gender VoiceGender) string {
	if gender == VoiceMale {
		return "Kore"
	}
	return "Puck"
}

// GenerateAudio synthesizes the narration script as speech and wraps the
// returned PCM16 24kHz mono stream in a WAV container. Returns
// ErrNoAudioPayload when the response carries no inline audio.
func (c *Client) GenerateAudio(ctx context.Context, script, tone string, gender VoiceGender) (*AudioAsset, error) {
	voice := VoiceName(gender)
	prompt := fmt.Sprintf("Narrate with a high-end Indian accent: %s", script)

	log.Debug().
		Str("model", ModelSpeech).
		Str("voice", voice).
		Str("tone", tone).
		Int("script_length", len(script)).
		Msg("Requesting narration audio")

	start := time.Now()
	resp, err := c.ai.Models.GenerateContent(ctx, ModelSpeech, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Speech generation call failed")
		return nil, fmt.Errorf("failed to generate audio: %w", err)
	}

	pcm := inlineAudioData(resp)
	if len(pcm) == 0 {
		log.Warn().Dur("duration", time.Since(start)).Msg("Speech response had no inline payload")
		return nil, ErrNoAudioPayload
	}

	samples := audiocodec.BytesToSamples(pcm)
	wav := audiocodec.WAVBytes(samples, audiocodec.PlaybackRate, audiocodec.Channels)

	log.Info().
		Int("pcm_bytes", len(pcm)).
		Int("wav_bytes", len(wav)).
		Dur("duration", time.Since(start)).
		Msg("Narration audio generated")

	return &AudioAsset{WAV: wav, SampleRate: audiocodec.PlaybackRate}, nil
}

// inlineAudioData extracts the first inline audio payload from a response.
func inlineAudioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
