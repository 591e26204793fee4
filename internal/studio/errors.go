package studio

import "errors"

var (
	// ErrInsufficientCredits rejects a launch when the remaining quota is
	// exhausted. Nothing is deducted and nothing runs.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrSynthesisInProgress rejects a second launch while one run is
	// already synthesizing. Launches are rejected, never queued.
	ErrSynthesisInProgress = errors.New("a production run is already synthesizing")

	// ErrNoBlueprint rejects a launch before a blueprint has been drafted.
	ErrNoBlueprint = errors.New("no blueprint is ready to launch")

	// ErrEmptyPrompt rejects drafting from a blank prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNoCredential is returned when no API credential could be
	// provisioned.
	ErrNoCredential = errors.New("no API credential selected")
)
