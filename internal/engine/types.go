package engine

import "fmt"

// VoiceGender selects the narration voice.
type VoiceGender string

const (
	VoiceMale   VoiceGender = "male"
	VoiceFemale VoiceGender = "female"
)

// Scene is one storyboard entry of a blueprint.
type Scene struct {
	Description string `json:"description"`
	Camera      string `json:"camera"`
	Lighting    string `json:"lighting"`
	Duration    string `json:"duration"`
}

// Voice describes the narration track of a blueprint.
type Voice struct {
	Gender VoiceGender `json:"gender"`
	Accent string      `json:"accent"`
	Text   string      `json:"text"`
}

// Breakdown is the structured multi-scene production plan the prompt engine
// derives from free user text. It is parsed all-or-nothing: a Breakdown that
// fails Validate is never handed to callers.
type Breakdown struct {
	Storyboard  []Scene `json:"storyboard"`
	Subject     string  `json:"subject"`
	VisualStyle string  `json:"visual_style"`
	Voice       Voice   `json:"voice"`
	OutputType  string  `json:"output_type"` // "video" or "image"
	FinalPrompt string  `json:"finalSystemPrompt"`
}

// Validate reports whether the breakdown is complete. Partial blueprints are
// rejected wholesale so downstream synthesis never sees half a plan.
func (b *Breakdown) Validate() error {
	switch {
	case len(b.Storyboard) == 0:
		return fmt.Errorf("storyboard is empty")
	case b.Subject == "":
		return fmt.Errorf("subject is empty")
	case b.VisualStyle == "":
		return fmt.Errorf("visual style is empty")
	case b.Voice.Text == "":
		return fmt.Errorf("narration text is empty")
	case b.Voice.Gender != VoiceMale && b.Voice.Gender != VoiceFemale:
		return fmt.Errorf("voice gender %q is not male or female", b.Voice.Gender)
	case b.OutputType != "video" && b.OutputType != "image":
		return fmt.Errorf("output type %q is not video or image", b.OutputType)
	case b.FinalPrompt == "":
		return fmt.Errorf("final prompt is empty")
	}
	for i, s := range b.Storyboard {
		if s.Description == "" {
			return fmt.Errorf("scene %d has no description", i+1)
		}
	}
	return nil
}

// AddScene appends a scene to the storyboard.
func (b *Breakdown) AddScene(s Scene) {
	b.Storyboard = append(b.Storyboard, s)
}

// RemoveScene deletes the scene at idx. A blueprint must retain at least one
// scene; removal at length 1 or with an out-of-range index is rejected.
func (b *Breakdown) RemoveScene(idx int) error {
	if len(b.Storyboard) <= 1 {
		return fmt.Errorf("storyboard must retain at least one scene")
	}
	if idx < 0 || idx >= len(b.Storyboard) {
		return fmt.Errorf("scene index %d out of range [0,%d)", idx, len(b.Storyboard))
	}
	b.Storyboard = append(b.Storyboard[:idx], b.Storyboard[idx+1:]...)
	return nil
}

// UpdateScene replaces the scene at idx.
func (b *Breakdown) UpdateScene(idx int, s Scene) error {
	if idx < 0 || idx >= len(b.Storyboard) {
		return fmt.Errorf("scene index %d out of range [0,%d)", idx, len(b.Storyboard))
	}
	b.Storyboard[idx] = s
	return nil
}

// ImageAsset is a generated still image.
type ImageAsset struct {
	Data     []byte
	MIMEType string
}

// AudioAsset is a generated narration track, already wrapped in a WAV
// container.
type AudioAsset struct {
	WAV        []byte
	SampleRate int
}

// VideoAsset is a generated video clip.
type VideoAsset struct {
	Data     []byte
	MIMEType string
}
