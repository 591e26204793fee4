package live

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/rs/zerolog/log"
)

// FFPlayer plays scheduled PCM buffers by piping them to an ffplay process
// at their scheduled start times.
type FFPlayer struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	clock func() time.Duration

	mu     sync.Mutex
	closed bool
}

// NewFFPlayer launches ffplay reading raw PCM16 mono at the playback rate
// from stdin. clock is the shared playback clock.
func NewFFPlayer(clock func() time.Duration) (*FFPlayer, error) {
	cmd := exec.Command("ffplay",
		"-f", "s16le",
		"-ar", strconv.Itoa(audiocodec.PlaybackRate),
		"-ch_layout", "mono",
		"-nodisp",
		"-loglevel", "error",
		"-",
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffplay stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffplay: %w", err)
	}

	log.Debug().Int("rate", audiocodec.PlaybackRate).Msg("Audio playback started")

	return &FFPlayer{cmd: cmd, stdin: stdin, clock: clock}, nil
}

// Play implements Player. The buffer is written to the device when its start
// time comes up; Stop before that point discards it.
func (p *FFPlayer) Play(samples []int16, at time.Duration, onEnded func()) PlaybackHandle {
	h := &ffplayHandle{}

	delay := at - p.clock()
	if delay < 0 {
		delay = 0
	}

	duration := audiocodec.Duration(len(samples), audiocodec.PlaybackRate)
	h.timer = time.AfterFunc(delay, func() {
		if h.stopped() {
			return
		}
		p.write(samples)
		time.AfterFunc(duration, func() {
			if !h.stopped() && onEnded != nil {
				onEnded()
			}
		})
	})

	return h
}

func (p *FFPlayer) write(samples []int16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, err := p.stdin.Write(audiocodec.SamplesToBytes(samples)); err != nil {
		log.Warn().Err(err).Msg("Playback write failed")
	}
}

// Close shuts the playback process down.
func (p *FFPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	p.stdin.Close()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd.Wait()
	return nil
}

// ffplayHandle cancels a pending buffer. Audio already written to the device
// cannot be recalled; stopping only prevents future writes.
type ffplayHandle struct {
	mu    sync.Mutex
	stop  bool
	timer *time.Timer
}

func (h *ffplayHandle) Stop() {
	h.mu.Lock()
	h.stop = true
	t := h.timer
	h.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

func (h *ffplayHandle) stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stop
}
