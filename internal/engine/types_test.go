package engine

import "testing"

func validBreakdown() *Breakdown {
	return &Breakdown{
		Storyboard: []Scene{
			{Description: "Woman coding at a Mumbai café window", Camera: "Dolly-in", Lighting: "Golden Hour", Duration: "4 seconds"},
			{Description: "Close-up of laptop screen with rain outside", Camera: "Slow-motion", Lighting: "Soft Morning Sun", Duration: "3 seconds"},
		},
		Subject:     "Young woman in modern Indian fashion",
		VisualStyle: "Cinematic Mumbai realism",
		Voice:       Voice{Gender: VoiceFemale, Accent: "Indian English", Text: "What does your dream look like?"},
		OutputType:  "video",
		FinalPrompt: "Vertical 9:16 cinematic story of a Mumbai coder",
	}
}

func TestBreakdownValidate(t *testing.T) {
	if err := validBreakdown().Validate(); err != nil {
		t.Fatalf("valid breakdown rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Breakdown)
	}{
		{"empty storyboard", func(b *Breakdown) { b.Storyboard = nil }},
		{"missing subject", func(b *Breakdown) { b.Subject = "" }},
		{"missing style", func(b *Breakdown) { b.VisualStyle = "" }},
		{"missing narration", func(b *Breakdown) { b.Voice.Text = "" }},
		{"bad gender", func(b *Breakdown) { b.Voice.Gender = "robot" }},
		{"bad output type", func(b *Breakdown) { b.OutputType = "hologram" }},
		{"missing final prompt", func(b *Breakdown) { b.FinalPrompt = "" }},
		{"scene without description", func(b *Breakdown) { b.Storyboard[1].Description = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBreakdown()
			tt.mutate(b)
			if err := b.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRemoveSceneFloor(t *testing.T) {
	b := validBreakdown()

	if err := b.RemoveScene(1); err != nil {
		t.Fatalf("unexpected error removing scene: %v", err)
	}
	if len(b.Storyboard) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(b.Storyboard))
	}

	// Removal below one scene is rejected and leaves the storyboard intact.
	if err := b.RemoveScene(0); err == nil {
		t.Error("expected error removing last scene")
	}
	if len(b.Storyboard) != 1 {
		t.Errorf("storyboard mutated by rejected removal: %d scenes", len(b.Storyboard))
	}
}

func TestRemoveSceneOutOfRange(t *testing.T) {
	b := validBreakdown()
	if err := b.RemoveScene(5); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := b.RemoveScene(-1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestAddAndUpdateScene(t *testing.T) {
	b := validBreakdown()
	b.AddScene(Scene{Description: "Drone shot over Marine Drive", Camera: "Drone wide-angle", Lighting: "Neon", Duration: "5 seconds"})
	if len(b.Storyboard) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(b.Storyboard))
	}

	if err := b.UpdateScene(2, Scene{Description: "Revised", Camera: "Static", Lighting: "Dawn", Duration: "2 seconds"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Storyboard[2].Description != "Revised" {
		t.Errorf("update did not apply: %+v", b.Storyboard[2])
	}

	if err := b.UpdateScene(9, Scene{}); err == nil {
		t.Error("expected error for out-of-range update")
	}
}
