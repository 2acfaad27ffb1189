package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/infrastructure/logger"
	"github.com/bnema/vidkit/internal/port"
)

// ConversionService probes one input file at construction and exposes
// metadata, validation and conversion over it. The probe runs exactly once;
// both the raw and the simplified result are immutable afterwards. Re-probing
// a file means constructing a new service.
type ConversionService struct {
	inputPath  string
	prober     port.Prober
	transcoder port.Transcoder
	raw        *domain.ProbeResult
	probe      *domain.SimplifiedProbe
}

func NewConversionService(ctx context.Context, inputPath string, prober port.Prober, transcoder port.Transcoder) (*ConversionService, error) {
	raw, err := prober.Probe(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	probe, err := domain.Simplify(raw)
	if err != nil {
		return nil, err
	}

	return &ConversionService{
		inputPath:  inputPath,
		prober:     prober,
		transcoder: transcoder,
		raw:        raw,
		probe:      probe,
	}, nil
}

// Probe returns the simplified metadata fetched at construction.
func (s *ConversionService) Probe() *domain.SimplifiedProbe {
	return s.probe
}

// Validate reports whether the input's container format and streams are
// suitable for conversion. A rejection is advisory: the reason is logged
// and false returned, never an error.
func (s *ConversionService) Validate() bool {
	ok, reason := s.probe.Validate()
	if !ok {
		logger.Warn.Printf("validation failed for %s: %s",
			logger.SanitizeForLog(s.inputPath), logger.SanitizeForLog(reason))
	}
	return ok
}

// Describe renders the one-shot metadata summary.
func (s *ConversionService) Describe() (string, error) {
	return s.probe.Summary()
}

// Convert transcodes the input into outputFormat. The output path is
// outputPath when given, otherwise the input path with its extension
// replaced by the format. Equal input and resolved output extensions skip
// the transcode entirely and report ErrSameFormat. Returns the resolved
// output path.
func (s *ConversionService) Convert(ctx context.Context, outputFormat, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = replaceExt(s.inputPath, outputFormat)
	}

	inExt := strings.ToLower(filepath.Ext(s.inputPath))
	outExt := strings.ToLower(filepath.Ext(outputPath))
	if inExt == outExt {
		return "", fmt.Errorf("%w (%s), conversion cancelled", domain.ErrSameFormat, inExt)
	}

	if err := s.transcoder.Transcode(ctx, s.inputPath, outputFormat, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// VerifyOutput re-probes the converted file. True when it probes cleanly;
// probe failures are logged and reported as false, never raised.
func (s *ConversionService) VerifyOutput(ctx context.Context, outputPath string) bool {
	if _, err := s.prober.Probe(ctx, outputPath); err != nil {
		logger.Warn.Printf("output verification failed for %s: %v",
			logger.SanitizeForLog(outputPath), err)
		return false
	}
	return true
}

// replaceExt swaps only the extension, preserving directory and base name.
func replaceExt(path, format string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + format
}
