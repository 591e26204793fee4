package live

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/bharatai/studio/internal/audiocodec"
	"github.com/rs/zerolog/log"
)

// FFmpegCapture captures microphone audio by running ffmpeg against the
// default input device, decoding to raw PCM16 mono at the capture rate on a
// pipe. One NextFrame call blocks for one full fixed-size frame.
type FFmpegCapture struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	mu     sync.Mutex
	closed bool
}

// defaultCaptureArgs returns the ffmpeg input flags for the platform's
// default microphone.
func defaultCaptureArgs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"-f", "avfoundation", "-i", ":default"}
	case "windows":
		return []string{"-f", "dshow", "-i", "audio=default"}
	default:
		return []string{"-f", "pulse", "-i", "default"}
	}
}

// NewFFmpegCapture starts the capture process.
func NewFFmpegCapture() (*FFmpegCapture, error) {
	args := append(defaultCaptureArgs(),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(audiocodec.CaptureRate),
		"-ac", strconv.Itoa(audiocodec.Channels),
		"-loglevel", "error",
		"pipe:1",
	)
	cmd := exec.Command("ffmpeg", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg capture: %w", err)
	}

	log.Debug().Int("rate", audiocodec.CaptureRate).Msg("Microphone capture started")

	return &FFmpegCapture{cmd: cmd, stdout: stdout}, nil
}

// NextFrame implements CaptureSource.
func (c *FFmpegCapture) NextFrame() ([]float32, error) {
	buf := make([]byte, audiocodec.CaptureFrameSamples*2)
	if _, err := io.ReadFull(c.stdout, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}
	return audiocodec.PCM16ToFloat(audiocodec.BytesToSamples(buf)), nil
}

// Close implements CaptureSource. Safe to call more than once.
func (c *FFmpegCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	c.stdout.Close()
	if c.cmd.Process != nil {
		c.cmd.Process.Kill()
	}
	c.cmd.Wait()
	return nil
}
