package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// BuildTimelinePrompt joins the storyboard into one per-scene timeline
// string followed by the overall style.
func BuildTimelinePrompt(b *Breakdown) string {
	var sb strings.Builder
	for i, s := range b.Storyboard {
		if i > 0 {
			sb.WriteString(". ")
		}
		fmt.Fprintf(&sb, "Scene %d: %s with %s movement", i+1, s.Description, s.Camera)
	}
	sb.WriteString(". Overall: ")
	sb.WriteString(b.VisualStyle)
	return sb.String()
}

// GenerateVideo submits a Veo job seeded with the previously generated image
// and polls until it completes. The poll loop is bounded: when the attempt
// budget runs out a *VideoTimeoutError is returned, and ctx cancellation
// aborts the wait between polls.
func (c *Client) GenerateVideo(ctx context.Context, b *Breakdown, seed *ImageAsset) (*VideoAsset, error) {
	if seed == nil || len(seed.Data) == 0 {
		return nil, fmt.Errorf("video generation requires a seed image")
	}

	prompt := BuildTimelinePrompt(b) + ", cinematic vertical 9:16 reels style"

	log.Info().
		Str("model", ModelVideo).
		Int("scenes", len(b.Storyboard)).
		Int("seed_bytes", len(seed.Data)).
		Msg("Submitting video generation job")

	op, err := c.ai.Models.GenerateVideos(ctx, ModelVideo, prompt, &genai.Image{
		ImageBytes: seed.Data,
		MIMEType:   seed.MIMEType,
	}, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    "9:16",
	})
	if err != nil {
		log.Error().Err(err).Msg("Video job submission failed")
		return nil, fmt.Errorf("failed to start video generation: %w", err)
	}

	start := time.Now()
	attempts := 0
	err = waitForCompletion(ctx, c.pollInterval, c.maxPollAttempts, func(ctx context.Context) (bool, error) {
		attempts++
		op, err = c.ai.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return false, fmt.Errorf("poll video operation: %w", err)
		}
		log.Debug().Int("attempt", attempts).Bool("done", op.Done).Msg("Video operation polled")
		return op.Done, nil
	})
	if err != nil {
		return nil, err
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, fmt.Errorf("video operation completed without a video")
	}

	video := op.Response.GeneratedVideos[0].Video

	data := video.VideoBytes
	if len(data) == 0 {
		data, err = c.ai.Files.Download(ctx, video, nil)
		if err != nil {
			return nil, fmt.Errorf("download generated video: %w", err)
		}
	}

	mime := video.MIMEType
	if mime == "" {
		mime = "video/mp4"
	}

	log.Info().
		Int("bytes", len(data)).
		Int("polls", attempts).
		Dur("duration", time.Since(start)).
		Msg("Video generated")

	return &VideoAsset{Data: data, MIMEType: mime}, nil
}

// waitForCompletion sleeps interval between poll calls until poll reports
// done, maxAttempts polls have run, or ctx is cancelled. The first poll runs
// after one full interval, matching the service's minimum turnaround.
func waitForCompletion(ctx context.Context, interval time.Duration, maxAttempts int, poll func(context.Context) (bool, error)) error {
	start := time.Now()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		done, err := poll(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt >= maxAttempts {
			return &VideoTimeoutError{Attempts: attempt, Elapsed: time.Since(start)}
		}
	}
}
