package ffmpeg

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vidkit/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// fakeJPEG builds a minimal SOI..EOI byte sequence with the given payload.
func fakeJPEG(payload ...byte) []byte {
	frame := []byte{0xff, 0xd8}
	frame = append(frame, payload...)
	return append(frame, 0xff, 0xd9)
}

func TestReadJPEG_SplitsConcatenatedImages(t *testing.T) {
	first := fakeJPEG(0x01, 0x02, 0x03)
	second := fakeJPEG(0xaa, 0xbb)
	r := bufio.NewReader(bytes.NewReader(append(append([]byte{}, first...), second...)))

	got, err := readJPEG(r)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = readJPEG(r)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = readJPEG(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadJPEG_SkipsLeadingGarbage(t *testing.T) {
	frame := fakeJPEG(0x10)
	data := append([]byte{0x00, 0x42, 0xff}, frame...)
	r := bufio.NewReader(bytes.NewReader(data))

	got, err := readJPEG(r)
	require.NoError(t, err)
	assert.Equal(t, frame, got)
}

func TestReadJPEG_StuffedFFNotMistakenForEOI(t *testing.T) {
	// Entropy-coded 0xff bytes are stuffed as ff 00 and must not end the frame.
	frame := []byte{0xff, 0xd8, 0xff, 0x00, 0x11, 0xff, 0xd9}
	r := bufio.NewReader(bytes.NewReader(frame))

	got, err := readJPEG(r)
	require.NoError(t, err)
	assert.Equal(t, frame, got)
}

func TestReadJPEG_TruncatedImage(t *testing.T) {
	truncated := []byte{0xff, 0xd8, 0x01, 0x02}
	r := bufio.NewReader(bytes.NewReader(truncated))

	_, err := readJPEG(r)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadJPEG_EmptyStream(t *testing.T) {
	_, err := readJPEG(bufio.NewReader(bytes.NewReader(nil)))
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameStats(t *testing.T) {
	tests := []struct {
		name      string
		raw       *domain.ProbeResult
		wantFPS   float64
		wantTotal int
	}{
		{
			name: "nb_frames preferred",
			raw: &domain.ProbeResult{Streams: []domain.ProbeStream{{
				CodecType:  ptr("video"),
				RFrameRate: ptr("25/1"),
				NbFrames:   ptr("250"),
			}}},
			wantFPS:   25,
			wantTotal: 250,
		},
		{
			name: "duration fallback",
			raw: &domain.ProbeResult{Streams: []domain.ProbeStream{{
				CodecType:  ptr("video"),
				RFrameRate: ptr("25/1"),
				Duration:   ptr("10.0"),
			}}},
			wantFPS:   25,
			wantTotal: 250,
		},
		{
			name: "format duration fallback",
			raw: &domain.ProbeResult{
				Format: &domain.ProbeFormat{Duration: "4.0"},
				Streams: []domain.ProbeStream{{
					CodecType:  ptr("video"),
					RFrameRate: ptr("30/1"),
				}},
			},
			wantFPS:   30,
			wantTotal: 120,
		},
		{
			name:      "no video stream",
			raw:       &domain.ProbeResult{Streams: []domain.ProbeStream{{CodecType: ptr("audio")}}},
			wantFPS:   0,
			wantTotal: 0,
		},
		{
			name: "no usable stats",
			raw: &domain.ProbeResult{Streams: []domain.ProbeStream{{
				CodecType: ptr("video"),
			}}},
			wantFPS:   0,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fps, total := frameStats(tt.raw)
			assert.InDelta(t, tt.wantFPS, fps, 1e-9)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}
