package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STUDIO_TEST_STR", "value")

	if got := GetEnv("STUDIO_TEST_STR", "fallback"); got != "value" {
		t.Errorf("expected %q, got %q", "value", got)
	}
	if got := GetEnv("STUDIO_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("STUDIO_TEST_INT", "42")
	t.Setenv("STUDIO_TEST_BAD_INT", "not-a-number")

	if got := GetEnvInt("STUDIO_TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := GetEnvInt("STUDIO_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := GetEnvInt("STUDIO_TEST_UNSET", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("STUDIO_TEST_DUR", "15s")
	t.Setenv("STUDIO_TEST_BAD_DUR", "soon")

	if got := GetEnvDuration("STUDIO_TEST_DUR", time.Minute); got != 15*time.Second {
		t.Errorf("expected 15s, got %v", got)
	}
	if got := GetEnvDuration("STUDIO_TEST_BAD_DUR", time.Minute); got != time.Minute {
		t.Errorf("expected fallback 1m, got %v", got)
	}
}
