package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/infrastructure/logger"
	"github.com/bnema/vidkit/internal/port"
)

// FrameSampler decodes a video sequentially and persists every Nth frame as
// a numbered JPEG in a directory derived from the input name and frame rate.
type FrameSampler struct {
	inputPath string
	opener    port.VideoOpener
	writer    port.FrameWriter
	progress  io.Writer
}

// ExtractionSummary reports the outcome of one extraction pass.
type ExtractionSummary struct {
	FramesRead      int
	FramesExtracted int
	OutputDir       string
}

// NewFrameSampler validates the container precondition up front: the input
// extension must match requiredExt (".mp4" when empty). A mismatch fails
// construction before any decode attempt.
func NewFrameSampler(inputPath, requiredExt string, opener port.VideoOpener, writer port.FrameWriter) (*FrameSampler, error) {
	if requiredExt == "" {
		requiredExt = ".mp4"
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != strings.ToLower(requiredExt) {
		return nil, fmt.Errorf("%w: input must be a %s file, got %q", domain.ErrPrecondition, requiredExt, ext)
	}
	return &FrameSampler{
		inputPath: inputPath,
		opener:    opener,
		writer:    writer,
		progress:  os.Stderr,
	}, nil
}

// SetProgressOutput redirects the progress indicator, mainly for tests.
func (s *FrameSampler) SetProgressOutput(w io.Writer) {
	s.progress = w
}

// ExtractFrames reads frames from index 0 and writes every frame whose index
// is a multiple of stride as <index>.jpeg. End of stream is normal
// termination; a mid-stream decode failure surfaces as a DecodeError
// carrying the last successfully read index. The frame source is released
// on every exit path.
func (s *FrameSampler) ExtractFrames(ctx context.Context, stride int) (*ExtractionSummary, error) {
	if stride < 1 {
		return nil, fmt.Errorf("%w: stride must be >= 1, got %d", domain.ErrPrecondition, stride)
	}

	src, err := s.opener.Open(ctx, s.inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Release() }()

	fps := src.FPS()
	total := src.FrameCount()

	outputDir := frameDirName(s.inputPath, fps)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create frame directory %s: %w", outputDir, err)
	}

	// The expected count only sizes the progress bar; the reported frame
	// count may be 0 or wrong for some containers.
	expected := total / stride
	if expected <= 0 {
		expected = -1 // spinner
	}
	bar := progressbar.NewOptions(expected,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("extracting frames"),
		progressbar.OptionShowCount(),
	)

	framesRead := 0
	framesExtracted := 0
	for {
		frame, ok, err := src.Read()
		if err != nil {
			return nil, &domain.DecodeError{LastFrame: framesRead - 1, Err: err}
		}
		if !ok {
			break
		}
		if framesRead%stride == 0 {
			framePath := filepath.Join(outputDir, fmt.Sprintf("%d.jpeg", framesRead))
			if err := s.writer.WriteFrame(framePath, frame); err != nil {
				return nil, err
			}
			framesExtracted++
			_ = bar.Add(1)
		}
		framesRead++
	}
	_ = bar.Finish()

	logger.Info.Printf("extracted %d of %d frames from %s into %s",
		framesExtracted, framesRead, logger.SanitizeForLog(s.inputPath), outputDir)

	return &ExtractionSummary{
		FramesRead:      framesRead,
		FramesExtracted: framesExtracted,
		OutputDir:       outputDir,
	}, nil
}

// frameDirName derives the deterministic output directory name from the
// input base name and the reported frame rate.
func frameDirName(inputPath string, fps float64) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return fmt.Sprintf("frames_%s_%s", base, strconv.FormatFloat(fps, 'g', -1, 64))
}
