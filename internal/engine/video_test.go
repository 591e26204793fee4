package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildTimelinePrompt(t *testing.T) {
	b := validBreakdown()
	got := BuildTimelinePrompt(b)

	want := "Scene 1: Woman coding at a Mumbai café window with Dolly-in movement. " +
		"Scene 2: Close-up of laptop screen with rain outside with Slow-motion movement. " +
		"Overall: Cinematic Mumbai realism"
	if got != want {
		t.Errorf("timeline prompt:\n got %q\nwant %q", got, want)
	}
}

func TestBuildImagePrompt(t *testing.T) {
	b := validBreakdown()
	got := BuildImagePrompt(b)

	if !strings.HasPrefix(got, b.Subject+", "+b.Storyboard[0].Description) {
		t.Errorf("prompt should lead with subject and first scene: %q", got)
	}
	if !strings.Contains(got, "9:16 vertical") {
		t.Errorf("prompt missing vertical qualifier: %q", got)
	}
}

func TestWaitForCompletionSuccess(t *testing.T) {
	calls := 0
	err := waitForCompletion(context.Background(), time.Millisecond, 10, func(ctx context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 polls, got %d", calls)
	}
}

func TestWaitForCompletionTimeout(t *testing.T) {
	calls := 0
	err := waitForCompletion(context.Background(), time.Millisecond, 4, func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	})

	var timeoutErr *VideoTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected VideoTimeoutError, got %v", err)
	}
	if timeoutErr.Attempts != 4 {
		t.Errorf("expected 4 attempts recorded, got %d", timeoutErr.Attempts)
	}
	if calls != 4 {
		t.Errorf("expected exactly 4 polls, got %d", calls)
	}
}

func TestWaitForCompletionPollError(t *testing.T) {
	wantErr := errors.New("service unavailable")
	err := waitForCompletion(context.Background(), time.Millisecond, 10, func(ctx context.Context) (bool, error) {
		return false, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected poll error to propagate, got %v", err)
	}
}

func TestWaitForCompletionCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForCompletion(ctx, time.Hour, 10, func(ctx context.Context) (bool, error) {
		t.Fatal("poll should not run after cancellation")
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestVoiceName(t *testing.T) {
	if got := VoiceName(VoiceMale); got != "Kore" {
		t.Errorf("male voice: got %q, want Kore", got)
	}
	if got := VoiceName(VoiceFemale); got != "Puck" {
		t.Errorf("female voice: got %q, want Puck", got)
	}
}
