package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/port"
)

// Prober runs ffprobe and decodes its JSON output into domain types.
type Prober struct {
	bin string
}

func NewProber(bin string) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &Prober{bin: bin}
}

func (p *Prober) Probe(ctx context.Context, path string) (*domain.ProbeResult, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrProbe, path, exitDetail(err))
	}

	return ParseProbeOutput(output)
}

// ParseProbeOutput decodes raw ffprobe JSON. Exported so tests can exercise
// the decoding without a real ffprobe binary.
func ParseProbeOutput(data []byte) (*domain.ProbeResult, error) {
	var result domain.ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: parse ffprobe output: %v", domain.ErrProbe, err)
	}
	return &result, nil
}

// exitDetail extracts the tool's stderr from an exec error so the caller
// sees the external diagnostic verbatim.
func exitDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}

var _ port.Prober = (*Prober)(nil)
