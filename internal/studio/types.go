package studio

import (
	"time"

	"github.com/bharatai/studio/internal/engine"
)

// OutputType selects which assets a production run synthesizes.
type OutputType string

const (
	OutputImage OutputType = "IMAGE"
	OutputVideo OutputType = "VIDEO"
	OutputAudio OutputType = "AUDIO"
	OutputAll   OutputType = "ALL"
)

// Valid reports whether t is one of the four known output types.
func (t OutputType) Valid() bool {
	switch t {
	case OutputImage, OutputVideo, OutputAudio, OutputAll:
		return true
	}
	return false
}

func (t OutputType) wantsImage() bool { return t == OutputImage || t == OutputAll }
func (t OutputType) wantsAudio() bool { return t == OutputAudio || t == OutputAll }
func (t OutputType) wantsVideo() bool { return t == OutputVideo || t == OutputAll }

// JobStatus tracks one in-flight production run. It exists only for the
// duration of the run and is never persisted.
type JobStatus string

const (
	JobQueued       JobStatus = "queued"
	JobProcessing   JobStatus = "processing"
	JobSynthesizing JobStatus = "synthesizing"
	JobCompleted    JobStatus = "completed"
	JobFailed       JobStatus = "failed"
)

// ResultStatus marks a finished run.
type ResultStatus string

const (
	StatusCompleted ResultStatus = "completed"
	StatusFailed    ResultStatus = "failed"
)

// Result is one finished production run. It is assembled once by the
// orchestrator and owned by the history store afterwards; only the favorite
// flag ever changes.
type Result struct {
	ID         string            `json:"id"`
	JobID      string            `json:"jobId"`
	Prompt     string            `json:"prompt"`
	ImagePath  string            `json:"imagePath,omitempty"`
	VideoPath  string            `json:"videoPath,omitempty"`
	AudioPath  string            `json:"audioPath,omitempty"`
	Breakdown  *engine.Breakdown `json:"breakdown,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Status     ResultStatus      `json:"status"`
	OutputType OutputType        `json:"outputType"`
	IsFavorite bool              `json:"isFavorite"`
}

// Notification is one user-facing event message.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
