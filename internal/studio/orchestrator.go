// Package studio sequences production runs: prompt to blueprint, blueprint
// to synthesized assets, assets to history. One orchestrator drives exactly
// one run at a time.
package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bharatai/studio/internal/auth"
	"github.com/bharatai/studio/internal/engine"
)

// Phase is the orchestrator lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDraftingBlueprint
	PhaseBlueprintReady
	PhaseSynthesizing
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseDraftingBlueprint:
		return "DraftingBlueprint"
	case PhaseBlueprintReady:
		return "BlueprintReady"
	case PhaseSynthesizing:
		return "Synthesizing"
	case PhaseCompleted:
		return "Completed"
	case PhaseFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

// Orchestrator drives one production run end to end and exposes progress.
// Exactly one blueprint may be active at a time; exactly one run may be
// synthesizing at a time.
type Orchestrator struct {
	gen    engine.Generator
	store  *Store
	prov   auth.Provisioner
	outDir string

	mu        sync.Mutex
	phase     Phase
	breakdown *engine.Breakdown
	prompt    string
	jobStatus JobStatus
	step      int
}

// NewOrchestrator assembles an orchestrator. Synthesized assets are written
// under outDir.
func NewOrchestrator(gen engine.Generator, store *Store, prov auth.Provisioner, outDir string) *Orchestrator {
	return &Orchestrator{
		gen:    gen,
		store:  store,
		prov:   prov,
		outDir: outDir,
		phase:  PhaseIdle,
	}
}

// Phase returns the current lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// JobStatus returns the status of the current or most recent run.
func (o *Orchestrator) JobStatus() JobStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.jobStatus
}

// Step returns the numeric progress counter of the current run.
func (o *Orchestrator) Step() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// Breakdown returns the active blueprint, or nil before one is drafted.
func (o *Orchestrator) Breakdown() *engine.Breakdown {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.breakdown
}

// DraftBlueprint turns a free-text prompt into an editable blueprint. It
// requires a provisioned credential, prompting for one if absent. On failure
// the orchestrator returns to Idle with no blueprint.
func (o *Orchestrator) DraftBlueprint(ctx context.Context, prompt string) (*engine.Breakdown, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	if !o.prov.HasCredential() {
		if err := o.prov.SelectCredential(ctx); err != nil {
			return nil, fmt.Errorf("credential selection failed: %w", err)
		}
		if !o.prov.HasCredential() {
			return nil, ErrNoCredential
		}
	}

	o.mu.Lock()
	if o.phase == PhaseSynthesizing {
		o.mu.Unlock()
		return nil, ErrSynthesisInProgress
	}
	o.phase = PhaseDraftingBlueprint
	o.prompt = prompt
	o.mu.Unlock()

	o.store.AppendLog("INITIALIZING: Parsing narrative logic...")

	b, err := o.gen.RunPromptEngine(ctx, prompt)
	if err != nil {
		o.store.AppendLog("FATAL: Blueprint engine rejected context.")
		o.mu.Lock()
		o.phase = PhaseIdle
		o.breakdown = nil
		o.mu.Unlock()
		return nil, fmt.Errorf("blueprint drafting failed: %w", err)
	}

	o.store.AppendLog(fmt.Sprintf("BLUEPRINT: Segmented into %d high-fidelity scenes.", len(b.Storyboard)))

	o.mu.Lock()
	o.phase = PhaseBlueprintReady
	o.breakdown = b
	o.mu.Unlock()

	log.Info().Int("scenes", len(b.Storyboard)).Str("subject", b.Subject).Msg("Blueprint ready")
	return b, nil
}

// editableBreakdown returns the blueprint if it may be edited now. Must be
// called with o.mu held. A synthesizing run reads the blueprint, so edits
// are rejected until it finishes.
func (o *Orchestrator) editableBreakdown() (*engine.Breakdown, error) {
	if o.phase == PhaseSynthesizing {
		return nil, ErrSynthesisInProgress
	}
	if o.breakdown == nil {
		return nil, ErrNoBlueprint
	}
	return o.breakdown, nil
}

// UpdateScene edits one storyboard scene of the active blueprint.
func (o *Orchestrator) UpdateScene(idx int, s engine.Scene) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, err := o.editableBreakdown()
	if err != nil {
		return err
	}
	return b.UpdateScene(idx, s)
}

// AddScene appends a scene to the active blueprint.
func (o *Orchestrator) AddScene(s engine.Scene) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, err := o.editableBreakdown()
	if err != nil {
		return err
	}
	b.AddScene(s)
	return nil
}

// RemoveScene deletes a scene from the active blueprint. The blueprint must
// retain at least one scene.
func (o *Orchestrator) RemoveScene(idx int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, err := o.editableBreakdown()
	if err != nil {
		return err
	}
	return b.RemoveScene(idx)
}

// SetNarration replaces the narration text of the active blueprint.
func (o *Orchestrator) SetNarration(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, err := o.editableBreakdown()
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("narration text is empty")
	}
	b.Voice.Text = text
	return nil
}

// Launch runs synthesis for the active blueprint. Sub-steps execute strictly
// image, then audio, then video; video is always seeded with a generated
// image. On success the result is written to history and exactly one credit
// is deducted. On failure nothing is recorded, no credit is deducted, and
// the blueprint is preserved for retry.
func (o *Orchestrator) Launch(ctx context.Context, output OutputType) (*Result, error) {
	if !output.Valid() {
		return nil, fmt.Errorf("unknown output type %q", output)
	}

	o.mu.Lock()
	if o.phase == PhaseSynthesizing {
		o.mu.Unlock()
		return nil, ErrSynthesisInProgress
	}
	if o.breakdown == nil {
		o.mu.Unlock()
		return nil, ErrNoBlueprint
	}
	if o.store.Credits() <= 0 {
		o.mu.Unlock()
		return nil, ErrInsufficientCredits
	}
	o.phase = PhaseSynthesizing
	o.jobStatus = JobSynthesizing
	o.step = 0
	b := o.breakdown
	prompt := o.prompt
	o.mu.Unlock()

	result, err := o.synthesize(ctx, b, prompt, output)
	if err != nil {
		o.store.AppendLog("FATAL: Production pipeline snapped.")
		o.mu.Lock()
		o.phase = PhaseBlueprintReady
		o.jobStatus = JobFailed
		o.mu.Unlock()
		log.Error().Err(err).Msg("Production run failed")
		return nil, err
	}

	o.store.AddResult(*result)
	if err := o.store.DeductCredit(); err != nil {
		log.Warn().Err(err).Msg("Credit deduction failed after completed run")
	}
	o.store.Notify("Production complete", fmt.Sprintf("Job %s is ready for distribution.", result.JobID))
	o.store.AppendLog("SUCCESS: Production ready for distribution.")

	o.mu.Lock()
	o.phase = PhaseCompleted
	o.jobStatus = JobCompleted
	o.mu.Unlock()

	log.Info().Str("job_id", result.JobID).Str("output", string(output)).Msg("Production completed")
	return result, nil
}

// synthesize runs the requested sub-steps and materializes the result. Any
// sub-step error aborts the whole run with no partial result.
func (o *Orchestrator) synthesize(ctx context.Context, b *engine.Breakdown, prompt string, output OutputType) (*Result, error) {
	jobID := newJobID()
	result := &Result{
		ID:         uuid.NewString(),
		JobID:      jobID,
		Prompt:     prompt,
		Breakdown:  b,
		Timestamp:  time.Now(),
		Status:     StatusCompleted,
		OutputType: output,
	}

	// Video synthesis always needs a seed frame, so the image step also
	// runs for video-only productions; its output is just not recorded.
	var seed *engine.ImageAsset
	if output.wantsImage() || output.wantsVideo() {
		o.bumpStep()
		o.store.AppendLog("DISPATCH: Requesting vertical visual stack (9:16)...")
		img, err := o.gen.GenerateImage(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("image synthesis failed: %w", err)
		}
		seed = img
		if output.wantsImage() {
			path, err := o.writeAsset(jobID, "image", imageExt(img.MIMEType), img.Data)
			if err != nil {
				return nil, err
			}
			result.ImagePath = path
		}
		o.store.AppendLog("CACHE: Low-res preview available.")
	}

	if output.wantsAudio() {
		o.bumpStep()
		o.store.AppendLog(fmt.Sprintf("AUDIO: Synthesizing %s voiceover track.", b.Voice.Gender))
		audio, err := o.gen.GenerateAudio(ctx, b.Voice.Text, "pro", b.Voice.Gender)
		if err != nil {
			return nil, fmt.Errorf("audio synthesis failed: %w", err)
		}
		path, err := o.writeAsset(jobID, "audio", ".wav", audio.WAV)
		if err != nil {
			return nil, err
		}
		result.AudioPath = path
	}

	if output.wantsVideo() {
		o.bumpStep()
		o.store.AppendLog(fmt.Sprintf("VIDEO: Interpolating %d scenes via Veo-3.1...", len(b.Storyboard)))
		video, err := o.gen.GenerateVideo(ctx, b, seed)
		if err != nil {
			return nil, fmt.Errorf("video synthesis failed: %w", err)
		}
		path, err := o.writeAsset(jobID, "video", ".mp4", video.Data)
		if err != nil {
			return nil, err
		}
		result.VideoPath = path
	}

	return result, nil
}

func (o *Orchestrator) bumpStep() {
	o.mu.Lock()
	o.step++
	o.mu.Unlock()
}

// writeAsset materializes one asset file under the output directory.
func (o *Orchestrator) writeAsset(jobID, kind, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(o.outDir, fmt.Sprintf("%s-%s%s", strings.ToLower(jobID), kind, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s asset: %w", kind, err)
	}
	return path, nil
}

// newJobID returns a short display id like JOB-3F9A.
func newJobID() string {
	tag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return "JOB-" + tag
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
