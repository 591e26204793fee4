// Package audiocodec converts between the wire format used by the realtime
// and speech APIs (base64-encoded little-endian PCM16 mono) and the sample
// formats used elsewhere in the studio (int16 and float32 buffers).
package audiocodec

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// CaptureRate is the sample rate of outbound microphone audio.
	CaptureRate = 16000
	// PlaybackRate is the sample rate of inbound model audio.
	PlaybackRate = 24000
	// Channels is the channel count on both directions of the wire.
	Channels = 1
	// CaptureFrameSamples is the fixed frame size captured from the
	// microphone before each outbound transmission.
	CaptureFrameSamples = 4096
)

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// BytesToSamples converts little-endian bytes to int16 samples.
// A trailing odd byte is dropped to preserve int16 alignment.
func BytesToSamples(b []byte) []int16 {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*2 : i*2+2]))
	}
	return samples
}

// Encode base64-encodes raw PCM bytes for transmission.
func Encode(pcm []byte) string {
	return base64.StdEncoding.EncodeToString(pcm)
}

// Decode reverses Encode.
func Decode(data string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode PCM payload: %w", err)
	}
	return b, nil
}

// FloatToPCM16 converts [-1, 1] float32 samples to int16, clamping out-of-range
// values instead of wrapping them.
func FloatToPCM16(in []float32) []int16 {
	out := make([]int16, len(in))
	for i, f := range in {
		switch {
		case f >= 1.0:
			out[i] = 32767
		case f <= -1.0:
			out[i] = -32768
		case f < 0:
			out[i] = int16(f * 32768)
		default:
			out[i] = int16(f * 32767)
		}
	}
	return out
}

// PCM16ToFloat converts int16 samples to float32 in [-1, 1).
func PCM16ToFloat(in []int16) []float32 {
	out := make([]float32, len(in))
	for i, s := range in {
		out[i] = float32(s) / 32768.0
	}
	return out
}

// Duration returns the playback duration of a mono sample buffer at the
// given rate.
func Duration(numSamples, sampleRate int) time.Duration {
	return time.Duration(numSamples) * time.Second / time.Duration(sampleRate)
}
