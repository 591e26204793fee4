package engine

import (
	"context"
	"time"
)

// InstrumentedGenerator decorates a Generator, reporting the wall-clock
// duration of every call to an observer. The concrete observer is typically
// a metrics histogram.
type InstrumentedGenerator struct {
	inner   Generator
	observe func(time.Duration)
}

// NewInstrumentedGenerator wraps gen so every operation reports its duration
// to observe.
func NewInstrumentedGenerator(gen Generator, observe func(time.Duration)) *InstrumentedGenerator {
	return &InstrumentedGenerator{inner: gen, observe: observe}
}

func (g *InstrumentedGenerator) timed() func() {
	start := time.Now()
	return func() { g.observe(time.Since(start)) }
}

// RunPromptEngine implements Generator.
func (g *InstrumentedGenerator) RunPromptEngine(ctx context.Context, userText string) (*Breakdown, error) {
	defer g.timed()()
	return g.inner.RunPromptEngine(ctx, userText)
}

// GenerateImage implements Generator.
func (g *InstrumentedGenerator) GenerateImage(ctx context.Context, b *Breakdown) (*ImageAsset, error) {
	defer g.timed()()
	return g.inner.GenerateImage(ctx, b)
}

// GenerateAudio implements Generator.
func (g *InstrumentedGenerator) GenerateAudio(ctx context.Context, script, tone string, gender VoiceGender) (*AudioAsset, error) {
	defer g.timed()()
	return g.inner.GenerateAudio(ctx, script, tone, gender)
}

// GenerateVideo implements Generator.
func (g *InstrumentedGenerator) GenerateVideo(ctx context.Context, b *Breakdown, seed *ImageAsset) (*VideoAsset, error) {
	defer g.timed()()
	return g.inner.GenerateVideo(ctx, b, seed)
}
