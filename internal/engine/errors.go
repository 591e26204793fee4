package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBlueprint is returned when the prompt engine yields malformed or
	// empty storyboard JSON. Callers must treat the run as all-or-nothing;
	// no retry is performed here.
	ErrBlueprint = errors.New("blueprint engine returned no usable storyboard")

	// ErrNoImagePayload is returned when the image model responds without
	// an inline image part.
	ErrNoImagePayload = errors.New("no image data returned")

	// ErrNoAudioPayload is returned when the speech model responds without
	// inline audio data.
	ErrNoAudioPayload = errors.New("no audio data returned")
)

// VideoTimeoutError is returned when the video operation poll loop exhausts
// its attempt budget without the service reporting completion.
type VideoTimeoutError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *VideoTimeoutError) Error() string {
	return fmt.Sprintf("video generation did not complete after %d polls (%s)", e.Attempts, e.Elapsed)
}
