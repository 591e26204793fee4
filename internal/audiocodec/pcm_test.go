package audiocodec

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pcm  []byte
	}{
		{"empty", []byte{}},
		{"single sample", []byte{0x01, 0x02}},
		{"arbitrary even-length bytes", []byte{0xff, 0x7f, 0x00, 0x80, 0x34, 0x12, 0xcd, 0xab}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.pcm))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.pcm) {
				t.Errorf("round trip mismatch: got %v, want %v", got, tt.pcm)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode("not valid base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestSamplesBytesRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 12345, -12345}
	got := BytesToSamples(SamplesToBytes(samples))
	if len(got) != len(samples) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestBytesToSamplesOddLength(t *testing.T) {
	got := BytesToSamples([]byte{0x01, 0x00, 0xff})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected single sample 1, got %v", got)
	}
}

func TestFloatToPCM16Clamping(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1.5, -1.5, 1.0, -1.0}
	out := FloatToPCM16(in)

	if out[0] != 0 {
		t.Errorf("zero maps to %d", out[0])
	}
	if out[3] != 32767 {
		t.Errorf("over-range positive should clamp to 32767, got %d", out[3])
	}
	if out[4] != -32768 {
		t.Errorf("over-range negative should clamp to -32768, got %d", out[4])
	}
	if out[5] != 32767 || out[6] != -32768 {
		t.Errorf("full-scale samples: got %d, %d", out[5], out[6])
	}
}

func TestPCM16ToFloatRange(t *testing.T) {
	out := PCM16ToFloat([]int16{-32768, 0, 32767})
	if out[0] != -1.0 {
		t.Errorf("min sample: got %f", out[0])
	}
	if out[1] != 0 {
		t.Errorf("zero sample: got %f", out[1])
	}
	if out[2] >= 1.0 || out[2] < 0.999 {
		t.Errorf("max sample out of range: %f", out[2])
	}
}

func TestDuration(t *testing.T) {
	if d := Duration(24000, PlaybackRate); d != time.Second {
		t.Errorf("24000 samples at 24kHz: got %v", d)
	}
	if d := Duration(4096, CaptureRate); d != 256*time.Millisecond {
		t.Errorf("4096 samples at 16kHz: got %v", d)
	}
}
