package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/port"
)

// VideoOpener opens a sequential MJPEG frame source over a video file by
// piping ffmpeg's image2pipe output. Frame rate and frame count come from a
// preliminary probe; an unprobeable file is reported as unopenable before
// any decoding starts.
type VideoOpener struct {
	bin    string
	prober port.Prober
}

func NewVideoOpener(bin string, prober port.Prober) *VideoOpener {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &VideoOpener{bin: bin, prober: prober}
}

func (o *VideoOpener) Open(ctx context.Context, path string) (port.FrameSource, error) {
	raw, err := o.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOpen, path, err)
	}
	fps, total := frameStats(raw)

	cmd := exec.CommandContext(ctx, o.bin,
		"-v", "error",
		"-i", path,
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "2",
		"-",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOpen, path, err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOpen, path, err)
	}

	return &mjpegSource{
		cmd:    cmd,
		r:      bufio.NewReaderSize(stdout, 1<<20),
		stderr: &stderr,
		fps:    fps,
		total:  total,
	}, nil
}

// frameStats derives the frame rate and total frame count from a probe
// result. Both are best effort: 0 when the container does not report them.
func frameStats(raw *domain.ProbeResult) (fps float64, total int) {
	vs := raw.VideoStream()
	if vs == nil {
		return 0, 0
	}
	if vs.RFrameRate != nil {
		fps = domain.ParseFrameRate(*vs.RFrameRate)
	}
	if vs.NbFrames != nil {
		if n, err := strconv.Atoi(*vs.NbFrames); err == nil && n > 0 {
			return fps, n
		}
	}
	// Fall back to duration * fps when the container lacks a frame count.
	var duration float64
	if vs.Duration != nil {
		duration = domain.ParseDuration(*vs.Duration)
	}
	if duration == 0 && raw.Format != nil {
		duration = domain.ParseDuration(raw.Format.Duration)
	}
	if duration > 0 && fps > 0 {
		total = int(duration * fps)
	}
	return fps, total
}

type mjpegSource struct {
	cmd    *exec.Cmd
	r      *bufio.Reader
	stderr *bytes.Buffer
	fps    float64
	total  int

	waitOnce sync.Once
	waitErr  error
	relOnce  sync.Once
}

func (s *mjpegSource) FPS() float64 {
	return s.fps
}

func (s *mjpegSource) FrameCount() int {
	return s.total
}

func (s *mjpegSource) Read() ([]byte, bool, error) {
	frame, err := readJPEG(s.r)
	if err == nil {
		return frame, true, nil
	}
	if errors.Is(err, io.EOF) {
		// Output drained. A clean ffmpeg exit is normal end of stream;
		// a non-zero exit is a decode failure.
		if waitErr := s.wait(); waitErr != nil {
			return nil, false, s.diag(waitErr)
		}
		return nil, false, nil
	}
	return nil, false, s.diag(err)
}

func (s *mjpegSource) Release() error {
	s.relOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.wait()
	})
	return nil
}

func (s *mjpegSource) wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
	})
	return s.waitErr
}

func (s *mjpegSource) diag(err error) error {
	if detail := strings.TrimSpace(s.stderr.String()); detail != "" {
		return fmt.Errorf("ffmpeg: %s: %w", detail, err)
	}
	return fmt.Errorf("ffmpeg: %w", err)
}

const (
	markerPrefix byte = 0xff
	markerSOI    byte = 0xd8
	markerEOI    byte = 0xd9
)

// readJPEG reads one complete JPEG image (SOI through EOI) from r. It
// returns io.EOF when the stream ends before the next image starts and
// io.ErrUnexpectedEOF when it ends mid-image. Within entropy-coded data
// 0xff is always stuffed with 0x00, so a bare SOI/EOI sequence is an
// unambiguous image boundary.
func readJPEG(r *bufio.Reader) ([]byte, error) {
	var prev byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, err
		}
		if prev == markerPrefix && b == markerSOI {
			break
		}
		prev = b
	}

	frame := make([]byte, 0, 64*1024)
	frame = append(frame, markerPrefix, markerSOI)
	prev = 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		frame = append(frame, b)
		if prev == markerPrefix && b == markerEOI {
			return frame, nil
		}
		prev = b
	}
}

var _ port.FrameSource = (*mjpegSource)(nil)
var _ port.VideoOpener = (*VideoOpener)(nil)
