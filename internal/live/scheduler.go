package live

import (
	"sync"
	"time"

	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/rs/zerolog/log"
)

// DefaultMaxQueued bounds how much audio may sit in the playback queue ahead
// of the clock. Chunks arriving past the bound are dropped; a short gap beats
// unbounded queue growth when the server outruns real time.
const DefaultMaxQueued = 30 * time.Second

// PlaybackHandle controls one scheduled audio source.
type PlaybackHandle interface {
	// Stop silences the source immediately, whether it is playing or still
	// waiting for its start time.
	Stop()
}

// Player realizes scheduled PCM buffers on an output device.
type Player interface {
	// Play schedules samples to start at the given playback-clock offset.
	// onEnded is invoked once the source finishes on its own.
	Play(samples []int16, at time.Duration, onEnded func()) PlaybackHandle
}

// Scheduler sequences inbound audio chunks for gapless playback. Each chunk
// starts at max(current clock, end of the previously scheduled chunk), so
// arrival jitter never causes overlap or gaps.
type Scheduler struct {
	mu        sync.Mutex
	player    Player
	clock     func() time.Duration
	next      time.Duration
	pending   map[*scheduledChunk]struct{}
	maxQueued time.Duration
}

// scheduledChunk tracks one queued source. The playback handle is attached
// after Play returns; Stop may race with attachment, so a stop request on an
// unattached chunk is replayed once the handle arrives.
type scheduledChunk struct {
	mu      sync.Mutex
	handle  PlaybackHandle
	stopped bool
}

func (c *scheduledChunk) attach(h PlaybackHandle) {
	c.mu.Lock()
	c.handle = h
	stopNow := c.stopped
	c.mu.Unlock()
	if stopNow {
		h.Stop()
	}
}

func (c *scheduledChunk) stop() {
	c.mu.Lock()
	c.stopped = true
	h := c.handle
	c.mu.Unlock()
	if h != nil {
		h.Stop()
	}
}

// NewScheduler creates a scheduler over the given player and playback clock.
func NewScheduler(player Player, clock func() time.Duration) *Scheduler {
	return &Scheduler{
		player:    player,
		clock:     clock,
		pending:   make(map[*scheduledChunk]struct{}),
		maxQueued: DefaultMaxQueued,
	}
}

// SetMaxQueued overrides the queued-playback bound.
func (s *Scheduler) SetMaxQueued(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxQueued = d
}

// Schedule queues one chunk of mono PCM16 samples at the playback rate.
// Chunks that would push the queue beyond the bound are dropped.
func (s *Scheduler) Schedule(samples []int16) {
	if len(samples) == 0 {
		return
	}

	s.mu.Lock()
	now := s.clock()
	start := s.next
	if now > start {
		start = now
	}

	if start-now > s.maxQueued {
		s.mu.Unlock()
		log.Warn().
			Dur("queued", start-now).
			Dur("bound", s.maxQueued).
			Msg("Playback queue full, dropping inbound audio chunk")
		return
	}

	chunk := &scheduledChunk{}
	s.pending[chunk] = struct{}{}
	s.next = start + audiocodec.Duration(len(samples), audiocodec.PlaybackRate)
	s.mu.Unlock()

	chunk.attach(s.player.Play(samples, start, func() {
		s.mu.Lock()
		delete(s.pending, chunk)
		s.mu.Unlock()
	}))
}

// Interrupt stops and discards every scheduled or playing source and resets
// the playback clock origin, modelling barge-in.
func (s *Scheduler) Interrupt() {
	s.mu.Lock()
	chunks := make([]*scheduledChunk, 0, len(s.pending))
	for c := range s.pending {
		chunks = append(chunks, c)
	}
	s.pending = make(map[*scheduledChunk]struct{})
	s.next = 0
	s.mu.Unlock()

	for _, c := range chunks {
		c.stop()
	}

	if len(chunks) > 0 {
		log.Debug().Int("stopped", len(chunks)).Msg("Playback interrupted")
	}
}

// Pending returns the number of sources currently scheduled or playing.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// NextStart returns the clock offset the next chunk would start at.
func (s *Scheduler) NextStart() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
