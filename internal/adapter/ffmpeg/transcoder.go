package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/port"
)

// Transcoder shells out to ffmpeg for container conversion.
type Transcoder struct {
	bin string
}

func NewTranscoder(bin string) *Transcoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Transcoder{bin: bin}
}

func (t *Transcoder) Transcode(ctx context.Context, inputPath, outputFormat, outputPath string) error {
	cmd := exec.CommandContext(ctx, t.bin,
		"-i", inputPath,
		"-f", outputFormat,
		"-y",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("%w: %s -> %s: %s", domain.ErrTranscode, inputPath, outputPath, detail)
	}
	return nil
}

var _ port.Transcoder = (*Transcoder)(nil)
