package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vidkit/internal/domain"
)

func ptr[T any](v T) *T { return &v }

type fakeProber struct {
	results map[string]*domain.ProbeResult
	errs    map[string]error
	calls   []string
}

func (f *fakeProber) Probe(_ context.Context, path string) (*domain.ProbeResult, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if result, ok := f.results[path]; ok {
		return result, nil
	}
	return nil, domain.ErrProbe
}

type transcodeCall struct {
	input, format, output string
}

type fakeTranscoder struct {
	err   error
	calls []transcodeCall
}

func (f *fakeTranscoder) Transcode(_ context.Context, inputPath, outputFormat, outputPath string) error {
	f.calls = append(f.calls, transcodeCall{inputPath, outputFormat, outputPath})
	return f.err
}

func validRawProbe(filename string) *domain.ProbeResult {
	return &domain.ProbeResult{
		Format: &domain.ProbeFormat{
			Filename:   filename,
			FormatName: "quicktime, mov",
			Duration:   "12.000000",
			Size:       "1048576",
		},
		Streams: []domain.ProbeStream{{
			CodecType:  ptr("video"),
			CodecName:  ptr("prores"),
			RFrameRate: ptr("25/1"),
			Width:      ptr(1280),
			Height:     ptr(720),
		}},
	}
}

func newTestService(t *testing.T, inputPath string, prober *fakeProber, transcoder *fakeTranscoder) *ConversionService {
	t.Helper()
	svc, err := NewConversionService(context.Background(), inputPath, prober, transcoder)
	require.NoError(t, err)
	return svc
}

func TestNewConversionService_ProbesOnce(t *testing.T) {
	prober := &fakeProber{results: map[string]*domain.ProbeResult{
		"clip.mov": validRawProbe("clip.mov"),
	}}
	svc := newTestService(t, "clip.mov", prober, &fakeTranscoder{})

	assert.Equal(t, []string{"clip.mov"}, prober.calls)
	assert.Equal(t, "clip.mov", svc.Probe().Filename)
	assert.True(t, svc.Validate())
}

func TestNewConversionService_ProbeFailureSurfaced(t *testing.T) {
	probeErr := errors.New("clip.mov: Invalid data found when processing input")
	prober := &fakeProber{errs: map[string]error{"clip.mov": probeErr}}

	_, err := NewConversionService(context.Background(), "clip.mov", prober, &fakeTranscoder{})
	assert.ErrorIs(t, err, probeErr)
}

func TestNewConversionService_MalformedProbe(t *testing.T) {
	prober := &fakeProber{results: map[string]*domain.ProbeResult{
		"clip.mov": {Streams: []domain.ProbeStream{}},
	}}

	_, err := NewConversionService(context.Background(), "clip.mov", prober, &fakeTranscoder{})
	assert.ErrorIs(t, err, domain.ErrMalformedProbe)
}

func TestConvert_DerivesOutputPath(t *testing.T) {
	prober := &fakeProber{results: map[string]*domain.ProbeResult{
		"/videos/clip.mov": validRawProbe("/videos/clip.mov"),
	}}
	transcoder := &fakeTranscoder{}
	svc := newTestService(t, "/videos/clip.mov", prober, transcoder)

	outputPath, err := svc.Convert(context.Background(), "mp4", "")
	require.NoError(t, err)

	assert.Equal(t, "/videos/clip.mp4", outputPath)
	require.Len(t, transcoder.calls, 1)
	assert.Equal(t, transcodeCall{"/videos/clip.mov", "mp4", "/videos/clip.mp4"}, transcoder.calls[0])
}

func TestConvert_SameFormatSkipsTranscode(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		format     string
		outputPath string
	}{
		{"derived path same extension", "clip.mov", "mov", ""},
		{"override path same extension", "clip.mov", "mp4", "other.mov"},
		{"case-insensitive extension match", "clip.MOV", "mov", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{results: map[string]*domain.ProbeResult{
				tt.input: validRawProbe(tt.input),
			}}
			transcoder := &fakeTranscoder{}
			svc := newTestService(t, tt.input, prober, transcoder)

			_, err := svc.Convert(context.Background(), tt.format, tt.outputPath)
			assert.ErrorIs(t, err, domain.ErrSameFormat)
			assert.Empty(t, transcoder.calls, "transcode capability must not be invoked")
		})
	}
}

func TestConvert_TranscodeFailurePropagates(t *testing.T) {
	prober := &fakeProber{results: map[string]*domain.ProbeResult{
		"clip.mov": validRawProbe("clip.mov"),
	}}
	transcoder := &fakeTranscoder{err: domain.ErrTranscode}
	svc := newTestService(t, "clip.mov", prober, transcoder)

	_, err := svc.Convert(context.Background(), "mp4", "")
	assert.ErrorIs(t, err, domain.ErrTranscode)
	assert.Len(t, transcoder.calls, 1, "exactly one attempt, no retry")
}

func TestValidate_RejectsUnsuitableInput(t *testing.T) {
	raw := validRawProbe("clip.ts")
	raw.Format.FormatName = "mpegts"
	prober := &fakeProber{results: map[string]*domain.ProbeResult{"clip.ts": raw}}
	svc := newTestService(t, "clip.ts", prober, &fakeTranscoder{})

	assert.False(t, svc.Validate())
}

func TestVerifyOutput(t *testing.T) {
	prober := &fakeProber{
		results: map[string]*domain.ProbeResult{
			"clip.mov": validRawProbe("clip.mov"),
			"clip.mp4": validRawProbe("clip.mp4"),
		},
		errs: map[string]error{
			"broken.mp4": domain.ErrProbe,
		},
	}
	svc := newTestService(t, "clip.mov", prober, &fakeTranscoder{})

	assert.True(t, svc.VerifyOutput(context.Background(), "clip.mp4"))
	assert.False(t, svc.VerifyOutput(context.Background(), "broken.mp4"))
}

func TestDescribe_NoStreams(t *testing.T) {
	prober := &fakeProber{results: map[string]*domain.ProbeResult{
		"clip.mov": {
			Format:  &domain.ProbeFormat{FormatName: "quicktime, mov"},
			Streams: []domain.ProbeStream{},
		},
	}}
	svc := newTestService(t, "clip.mov", prober, &fakeTranscoder{})

	_, err := svc.Describe()
	assert.ErrorIs(t, err, domain.ErrNoStreams)
}
