package audiocodec

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWAVBytesHeader(t *testing.T) {
	samples := []int16{100, -100, 200, -200}
	wav := WAVBytes(samples, PlaybackRate, 1)

	if len(wav) != 44+len(samples)*2 {
		t.Fatalf("expected %d bytes, got %d", 44+len(samples)*2, len(wav))
	}

	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("missing RIFF marker: %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("missing WAVE marker: %q", wav[8:12])
	}
	if !bytes.Equal(wav[12:16], []byte("fmt ")) {
		t.Errorf("missing fmt chunk: %q", wav[12:16])
	}
	if !bytes.Equal(wav[36:40], []byte("data")) {
		t.Errorf("missing data chunk: %q", wav[36:40])
	}

	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(len(wav)-8) {
		t.Errorf("RIFF size: got %d, want %d", got, len(wav)-8)
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("format tag: got %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels: got %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != PlaybackRate {
		t.Errorf("sample rate: got %d, want %d", got, PlaybackRate)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != PlaybackRate*2 {
		t.Errorf("byte rate: got %d, want %d", got, PlaybackRate*2)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample: got %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data length: got %d, want %d", got, len(samples)*2)
	}

	// Payload is the raw little-endian samples.
	if got := BytesToSamples(wav[44:]); got[0] != 100 || got[3] != -200 {
		t.Errorf("payload mismatch: %v", got)
	}
}

func TestWAVBytesEmpty(t *testing.T) {
	wav := WAVBytes(nil, CaptureRate, 1)
	if len(wav) != 44 {
		t.Fatalf("expected bare 44-byte header, got %d bytes", len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 0 {
		t.Errorf("data length: got %d, want 0", got)
	}
}
