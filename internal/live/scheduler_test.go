package live

import (
	"sync"
	"testing"
	"time"
)

// fakePlayer records scheduled buffers without realizing them.
type fakePlayer struct {
	mu    sync.Mutex
	plays []fakePlay
}

type fakePlay struct {
	samples []int16
	at      time.Duration
	handle  *fakeHandle
}

type fakeHandle struct {
	mu      sync.Mutex
	stopped bool
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
}

func (h *fakeHandle) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

func (p *fakePlayer) Play(samples []int16, at time.Duration, onEnded func()) PlaybackHandle {
	h := &fakeHandle{}
	p.mu.Lock()
	p.plays = append(p.plays, fakePlay{samples: samples, at: at, handle: h})
	p.mu.Unlock()
	return h
}

func (p *fakePlayer) recorded() []fakePlay {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]fakePlay(nil), p.plays...)
}

// oneSecondChunk is 24000 samples, one second at the playback rate.
func oneSecondChunk() []int16 {
	return make([]int16, 24000)
}

func TestSchedulerGaplessSequencing(t *testing.T) {
	var now time.Duration
	player := &fakePlayer{}
	s := NewScheduler(player, func() time.Duration { return now })

	// Two chunks arriving back to back must be scheduled strictly
	// sequentially even though the clock has not advanced.
	s.Schedule(oneSecondChunk())
	s.Schedule(oneSecondChunk())

	plays := player.recorded()
	if len(plays) != 2 {
		t.Fatalf("expected 2 scheduled chunks, got %d", len(plays))
	}
	if plays[0].at != 0 {
		t.Errorf("first chunk start: got %v, want 0", plays[0].at)
	}
	if plays[1].at != time.Second {
		t.Errorf("second chunk start: got %v, want 1s", plays[1].at)
	}
	if got := s.NextStart(); got != 2*time.Second {
		t.Errorf("next start: got %v, want 2s", got)
	}
}

func TestSchedulerClockCatchUp(t *testing.T) {
	var now time.Duration
	player := &fakePlayer{}
	s := NewScheduler(player, func() time.Duration { return now })

	s.Schedule(oneSecondChunk())

	// A late-arriving chunk after playback has drained starts at the
	// current clock, not at the stale next-start mark.
	now = 5 * time.Second
	s.Schedule(oneSecondChunk())

	plays := player.recorded()
	if plays[1].at != 5*time.Second {
		t.Errorf("late chunk start: got %v, want 5s", plays[1].at)
	}
}

func TestSchedulerInterrupt(t *testing.T) {
	var now time.Duration
	player := &fakePlayer{}
	s := NewScheduler(player, func() time.Duration { return now })

	s.Schedule(oneSecondChunk())
	s.Schedule(oneSecondChunk())
	if s.Pending() != 2 {
		t.Fatalf("expected 2 pending sources, got %d", s.Pending())
	}

	s.Interrupt()

	if s.Pending() != 0 {
		t.Errorf("expected empty pending set, got %d", s.Pending())
	}
	for i, p := range player.recorded() {
		if !p.handle.isStopped() {
			t.Errorf("chunk %d was not stopped", i)
		}
	}

	// The next inbound chunk starts at time zero on the reset clock.
	s.Schedule(oneSecondChunk())
	plays := player.recorded()
	if plays[2].at != 0 {
		t.Errorf("post-interrupt chunk start: got %v, want 0", plays[2].at)
	}
}

func TestSchedulerQueueBound(t *testing.T) {
	var now time.Duration
	player := &fakePlayer{}
	s := NewScheduler(player, func() time.Duration { return now })
	s.SetMaxQueued(2 * time.Second)

	for i := 0; i < 5; i++ {
		s.Schedule(oneSecondChunk())
	}

	// Chunks 4 and 5 would start beyond the 2s bound and are dropped.
	if got := len(player.recorded()); got != 3 {
		t.Errorf("expected 3 chunks within the bound, got %d", got)
	}
	if got := s.NextStart(); got != 3*time.Second {
		t.Errorf("next start: got %v, want 3s", got)
	}
}

func TestSchedulerOnEndedRemovesPending(t *testing.T) {
	s := NewScheduler(&immediatePlayer{}, func() time.Duration { return 0 })
	s.Schedule(oneSecondChunk())
	if s.Pending() != 0 {
		t.Errorf("expected pending source removed after it ended, got %d", s.Pending())
	}
}

// immediatePlayer reports every source as instantly finished.
type immediatePlayer struct{}

func (immediatePlayer) Play(samples []int16, at time.Duration, onEnded func()) PlaybackHandle {
	h := &fakeHandle{}
	if onEnded != nil {
		onEnded()
	}
	return h
}
