package live

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bharatai/studio/internal/audiocodec"
)

type recvResult struct {
	msg *ServerMessage
	err error
}

// fakeTransport is a scriptable duplex connection. Outbound frames are
// recorded; inbound messages and errors are fed through the recv channel.
type fakeTransport struct {
	mu        sync.Mutex
	sent      []MediaFrame
	recv      chan recvResult
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		recv:   make(chan recvResult, 16),
		closed: make(chan struct{}),
	}
}

func (t *fakeTransport) Send(f MediaFrame) error {
	t.mu.Lock()
	t.sent = append(t.sent, f)
	t.mu.Unlock()
	return nil
}

func (t *fakeTransport) sentFrames() []MediaFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]MediaFrame(nil), t.sent...)
}

func (t *fakeTransport) Receive() (*ServerMessage, error) {
	select {
	case r := <-t.recv:
		return r.msg, r.err
	case <-t.closed:
		return nil, io.EOF
	}
}

func (t *fakeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

type fakeDialer struct {
	transport Transport
	err       error
}

func (d *fakeDialer) Dial(ctx context.Context) (Transport, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.transport, nil
}

// fakeCapture feeds scripted frames and reports io.EOF once closed.
type fakeCapture struct {
	frames    chan []float32
	closeOnce sync.Once
}

func newFakeCapture() *fakeCapture {
	return &fakeCapture{frames: make(chan []float32, 16)}
}

func (c *fakeCapture) NextFrame() ([]float32, error) {
	f, ok := <-c.frames
	if !ok {
		return nil, io.EOF
	}
	return f, nil
}

func (c *fakeCapture) Close() error {
	c.closeOnce.Do(func() { close(c.frames) })
	return nil
}

func newTestSession() (*Session, *fakeTransport, *fakeCapture, *fakePlayer) {
	transport := newFakeTransport()
	capture := newFakeCapture()
	player := &fakePlayer{}
	sched := NewScheduler(player, func() time.Duration { return 0 })
	sess := NewSessionWithScheduler(&fakeDialer{transport: transport}, capture, sched)
	return sess, transport, capture, player
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSessionStartStopLifecycle(t *testing.T) {
	sess, _, _, _ := newTestSession()

	if sess.State() != StateStandby {
		t.Fatalf("initial state: got %s, want Standby", sess.State())
	}
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if sess.State() != StateListening {
		t.Errorf("state after start: got %s, want Listening", sess.State())
	}
	if sess.Status() != "Listening" {
		t.Errorf("status after start: got %q, want Listening", sess.Status())
	}

	sess.Stop()
	if sess.State() != StateStandby {
		t.Errorf("state after stop: got %s, want Standby", sess.State())
	}
	if sess.Status() != "Standby" {
		t.Errorf("status after stop: got %q, want Standby", sess.Status())
	}

	// A second stop is a no-op.
	sess.Stop()
	if sess.State() != StateStandby {
		t.Errorf("state after double stop: got %s, want Standby", sess.State())
	}
}

func TestSessionRejectsDoubleStart(t *testing.T) {
	sess, _, _, _ := newTestSession()
	defer sess.Stop()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := sess.Start(context.Background()); err == nil {
		t.Error("expected second start to fail while listening")
	}
}

func TestSessionCannotRestartAfterStop(t *testing.T) {
	sess, _, _, _ := newTestSession()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	sess.Stop()

	// Stop closed the capture source, so a second Start would stream
	// nothing. It must fail instead of pretending to listen.
	if err := sess.Start(context.Background()); err == nil {
		t.Fatal("expected start after stop to fail")
	}
	if sess.State() != StateStandby {
		t.Errorf("state after rejected restart: got %s, want Standby", sess.State())
	}
}

func TestSessionDialFailure(t *testing.T) {
	capture := newFakeCapture()
	player := &fakePlayer{}
	sched := NewScheduler(player, func() time.Duration { return 0 })
	sess := NewSessionWithScheduler(&fakeDialer{err: errors.New("refused")}, capture, sched)

	if err := sess.Start(context.Background()); err == nil {
		t.Fatal("expected start to surface the dial error")
	}
	if sess.State() != StateStandby {
		t.Errorf("state after dial failure: got %s, want Standby", sess.State())
	}
	if sess.Status() != "Error" {
		t.Errorf("status after dial failure: got %q, want Error", sess.Status())
	}
}

func TestSessionOutboundFrameEncoding(t *testing.T) {
	sess, transport, capture, _ := newTestSession()
	defer sess.Stop()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	capture.frames <- []float32{0, 0.5, -1}

	waitFor(t, "outbound frame", func() bool { return len(transport.sentFrames()) >= 1 })

	frame := transport.sentFrames()[0]
	if frame.MIMEType != "audio/pcm;rate=16000" {
		t.Errorf("frame mime type: got %q", frame.MIMEType)
	}
	pcm, err := audiocodec.Decode(frame.Data)
	if err != nil {
		t.Fatalf("frame payload not base64: %v", err)
	}
	samples := audiocodec.BytesToSamples(pcm)
	want := []int16{0, 16383, -32768}
	if len(samples) != len(want) {
		t.Fatalf("sample count: got %d, want %d", len(samples), len(want))
	}
	for i, s := range samples {
		if s != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, s, want[i])
		}
	}
}

func TestSessionSchedulesInboundAudio(t *testing.T) {
	sess, transport, _, player := newTestSession()
	defer sess.Stop()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	chunk := []int16{100, -200, 300}
	transport.recv <- recvResult{msg: &ServerMessage{
		Audio: audiocodec.Encode(audiocodec.SamplesToBytes(chunk)),
	}}

	waitFor(t, "scheduled chunk", func() bool { return len(player.recorded()) >= 1 })

	got := player.recorded()[0].samples
	if len(got) != len(chunk) {
		t.Fatalf("scheduled sample count: got %d, want %d", len(got), len(chunk))
	}
	for i, s := range got {
		if s != chunk[i] {
			t.Errorf("sample %d: got %d, want %d", i, s, chunk[i])
		}
	}
}

func TestSessionInterruptStopsPlayback(t *testing.T) {
	sess, transport, _, player := newTestSession()
	defer sess.Stop()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	transport.recv <- recvResult{msg: &ServerMessage{
		Audio: audiocodec.Encode(audiocodec.SamplesToBytes(make([]int16, 2400))),
	}}
	waitFor(t, "scheduled chunk", func() bool { return len(player.recorded()) >= 1 })

	transport.recv <- recvResult{msg: &ServerMessage{Interrupted: true}}
	waitFor(t, "playback stopped", func() bool { return player.recorded()[0].handle.isStopped() })

	if got := sess.Scheduler().Pending(); got != 0 {
		t.Errorf("pending after interrupt: got %d, want 0", got)
	}
	if got := sess.Scheduler().NextStart(); got != 0 {
		t.Errorf("next start after interrupt: got %v, want 0", got)
	}
}

func TestSessionServerClose(t *testing.T) {
	sess, transport, _, _ := newTestSession()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	transport.recv <- recvResult{err: io.EOF}
	waitFor(t, "teardown", func() bool { return sess.State() == StateStandby })

	if sess.Status() != "Closed" {
		t.Errorf("status after server close: got %q, want Closed", sess.Status())
	}
}

func TestSessionTransportError(t *testing.T) {
	sess, transport, _, _ := newTestSession()

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	transport.recv <- recvResult{err: errors.New("connection reset")}
	waitFor(t, "teardown", func() bool { return sess.State() == StateStandby })

	if sess.Status() != "Error" {
		t.Errorf("status after transport error: got %q, want Error", sess.Status())
	}
}
