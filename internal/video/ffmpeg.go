package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/BruksfildServices01/crime-detection/internal/detection"
)

var _ detection.FrameSkipper = (*Stream)(nil)

const stderrLimit = 4 << 10

// Decoder runs ffmpeg to turn a video file into scaled rgb24 frames.
type Decoder struct {
	binary string
	size   int
}

func NewDecoder(binary string, size int) *Decoder {
	return &Decoder{binary: binary, size: size}
}

func (d *Decoder) args(path string) []string {
	scale := "scale=" + strconv.Itoa(d.size) + ":" + strconv.Itoa(d.size)
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", path,
		"-vf", scale,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
}

// Open starts ffmpeg; cancelling ctx kills it.
func (d *Decoder) Open(ctx context.Context, path string) (detection.FrameSource, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, d.binary, d.args(path)...)

	stderr := &cappedBuffer{limit: stderrLimit}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}

	return &Stream{
		cmd:    cmd,
		cancel: cancel,
		frames: NewFrameReader(stdout, d.size, d.size),
		stderr: stderr,
	}, nil
}

// Stream is a running ffmpeg process.
type Stream struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	frames *FrameReader
	stderr *cappedBuffer

	once    sync.Once
	waitErr error
}

func (s *Stream) Next() (image.Image, error) {
	img, err := s.frames.Read()
	if err != nil {
		return nil, s.end(err)
	}
	return img, nil
}

// Skip discards one frame without allocating an image.
func (s *Stream) Skip() error {
	if err := s.frames.Skip(); err != nil {
		return s.end(err)
	}
	return nil
}

// end reports a non-zero ffmpeg exit, with its stderr, in place of the
// io.EOF seen on stdout.
func (s *Stream) end(err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	if werr := s.wait(); werr != nil {
		msg := strings.TrimSpace(s.stderr.String())
		return fmt.Errorf("ffmpeg: %w: %s", werr, msg)
	}
	return io.EOF
}

func (s *Stream) wait() error {
	s.once.Do(func() {
		s.waitErr = s.cmd.Wait()
		s.cancel()
	})
	return s.waitErr
}

// Close stops ffmpeg if it is still running and reaps it.
func (s *Stream) Close() error {
	s.cancel()
	_ = s.wait()
	return nil
}

type cappedBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
