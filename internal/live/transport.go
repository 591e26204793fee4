// Package live maintains a bidirectional low-latency audio conversation with
// the realtime creative-director model: microphone PCM frames stream up, and
// model audio chunks stream down into a gapless playback schedule.
package live

import "context"

// MediaFrame is one outbound audio chunk: base64-encoded little-endian PCM16
// mono at the capture rate.
type MediaFrame struct {
	Data     string
	MIMEType string
}

// ServerMessage is one inbound event from the realtime service.
type ServerMessage struct {
	// Audio is a base64-encoded PCM16 mono chunk at the playback rate.
	// Empty when the message carries no audio.
	Audio string
	// Interrupted signals barge-in: all scheduled playback must stop.
	Interrupted bool
}

// Transport is a persistent duplex connection to the realtime service.
type Transport interface {
	// Send transmits one media frame. Frames are fire-and-forget; no
	// backpressure signal is read from the connection.
	Send(frame MediaFrame) error
	// Receive blocks for the next server message. It returns io.EOF on a
	// clean server close.
	Receive() (*ServerMessage, error)
	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Dialer opens transports.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// CaptureSource produces fixed-size microphone frames of float32 samples.
type CaptureSource interface {
	// NextFrame returns the next frame. It returns io.EOF when the source
	// has ended.
	NextFrame() ([]float32, error)
	// Close releases the capture device. Safe to call more than once.
	Close() error
}
