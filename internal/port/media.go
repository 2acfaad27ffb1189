package port

import (
	"context"

	"github.com/bnema/vidkit/internal/domain"
)

// Prober inspects a media file's container and stream metadata without
// decoding content.
type Prober interface {
	Probe(ctx context.Context, path string) (*domain.ProbeResult, error)
}

// Transcoder rewraps or re-encodes a media file into another container
// format. A single attempt, no retries.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputFormat, outputPath string) error
}
