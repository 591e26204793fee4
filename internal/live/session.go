package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/rs/zerolog/log"
)

// State is the live session lifecycle state.
type State int

const (
	StateStandby State = iota
	StateConnecting
	StateListening
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateListening:
		return "Listening"
	default:
		return "Standby"
	}
}

// captureMIMEType is the outbound wire format description.
const captureMIMEType = "audio/pcm;rate=16000"

// Session drives one realtime audio conversation. It owns the transport, the
// capture source, and the playback scheduler for its whole lifetime and
// releases all three on every exit path.
type Session struct {
	dialer  Dialer
	capture CaptureSource
	sched   *Scheduler

	mu        sync.Mutex
	state     State
	status    string
	transport Transport
	done      chan struct{}
	spent     bool
}

// NewSession assembles a session from its collaborators. The playback clock
// starts counting when the session is created.
func NewSession(dialer Dialer, capture CaptureSource, player Player) *Session {
	epoch := time.Now()
	return &Session{
		dialer:  dialer,
		capture: capture,
		sched:   NewScheduler(player, func() time.Duration { return time.Since(epoch) }),
		state:   StateStandby,
		status:  "Standby",
	}
}

// NewSessionWithScheduler is like NewSession but with a caller-built
// scheduler. Used by tests that need a fake clock.
func NewSessionWithScheduler(dialer Dialer, capture CaptureSource, sched *Scheduler) *Session {
	return &Session{
		dialer:  dialer,
		capture: capture,
		sched:   sched,
		state:   StateStandby,
		status:  "Standby",
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the user-visible status string, which keeps the terminal
// reason ("Closed", "Error") after teardown.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Scheduler exposes the playback scheduler, for status display.
func (s *Session) Scheduler() *Scheduler {
	return s.sched
}

// Start opens the duplex connection and begins streaming microphone frames
// up and scheduling model audio down. It returns once the connection is
// established; the streaming loops run until Stop or a transport failure.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.spent {
		s.mu.Unlock()
		return fmt.Errorf("session resources released; create a new session")
	}
	if s.state != StateStandby {
		s.mu.Unlock()
		return fmt.Errorf("session already active (%s)", s.state)
	}
	s.state = StateConnecting
	s.status = "Connecting..."
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	log.Info().Msg("Opening live session")

	transport, err := s.dialer.Dial(ctx)
	if err != nil {
		s.teardown("Error")
		return fmt.Errorf("failed to open live connection: %w", err)
	}

	s.mu.Lock()
	// Stop may have raced the dial.
	select {
	case <-done:
		s.mu.Unlock()
		transport.Close()
		return fmt.Errorf("session stopped during connect")
	default:
	}
	s.transport = transport
	s.state = StateListening
	s.status = "Listening"
	s.mu.Unlock()

	log.Info().Msg("Live session listening")

	go s.sendLoop(transport, done)
	go s.receiveLoop(transport, done)

	return nil
}

// sendLoop streams capture frames to the transport until the session ends.
// Frames are fire-and-forget: a failed send is logged and the loop moves on,
// matching the no-backpressure wire contract.
func (s *Session) sendLoop(transport Transport, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		frame, err := s.capture.NextFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("Microphone capture failed")
			}
			return
		}

		pcm := audiocodec.SamplesToBytes(audiocodec.FloatToPCM16(frame))
		sendErr := transport.Send(MediaFrame{
			Data:     audiocodec.Encode(pcm),
			MIMEType: captureMIMEType,
		})
		if sendErr != nil {
			select {
			case <-done:
			default:
				log.Warn().Err(sendErr).Msg("Dropped outbound audio frame")
			}
		}
	}
}

// receiveLoop schedules inbound audio and reacts to interruption signals
// until the server closes or the transport fails.
func (s *Session) receiveLoop(transport Transport, done chan struct{}) {
	for {
		msg, err := transport.Receive()
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			if errors.Is(err, io.EOF) {
				log.Info().Msg("Live session closed by server")
				s.teardown("Closed")
			} else {
				log.Error().Err(err).Msg("Live session transport error")
				s.teardown("Error")
			}
			return
		}

		if msg.Interrupted {
			s.sched.Interrupt()
		}

		if msg.Audio != "" {
			pcm, err := audiocodec.Decode(msg.Audio)
			if err != nil {
				log.Warn().Err(err).Msg("Discarding undecodable inbound audio chunk")
				continue
			}
			s.sched.Schedule(audiocodec.BytesToSamples(pcm))
		}
	}
}

// Stop ends the session and releases the transport, the capture device, and
// all scheduled playback. It is idempotent: stopping an inactive session is
// a no-op that leaves the state Standby. A stopped session cannot be started
// again; its capture source is closed. Build a new Session to reconnect.
func (s *Session) Stop() {
	s.teardown("Standby")
}

// teardown closes everything once and records the terminal status. The state
// returns to Standby, and the session is marked spent because the capture
// source cannot deliver frames after Close.
func (s *Session) teardown(status string) {
	s.mu.Lock()
	if s.state == StateStandby && s.transport == nil {
		s.mu.Unlock()
		return
	}
	transport := s.transport
	s.transport = nil
	s.state = StateStandby
	s.status = status
	s.spent = true
	if s.done != nil {
		select {
		case <-s.done:
		default:
			close(s.done)
		}
	}
	s.mu.Unlock()

	if transport != nil {
		if err := transport.Close(); err != nil {
			log.Debug().Err(err).Msg("Transport close failed")
		}
	}
	if err := s.capture.Close(); err != nil {
		log.Debug().Err(err).Msg("Capture close failed")
	}
	s.sched.Interrupt()

	log.Info().Str("status", status).Msg("Live session stopped")
}
