package domain

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// SimplifiedStream is the stable per-stream shape derived from a raw probe
// stream. Fields absent in the raw record stay nil.
type SimplifiedStream struct {
	CodecName  *string `json:"codec_name"`
	CodecType  *string `json:"codec_type"`
	Duration   *string `json:"duration"`
	BitRate    *string `json:"bit_rate"`
	FrameRate  *string `json:"frame_rate"`
	ColorSpace *string `json:"color_space"`
	ColorRange *string `json:"color_range"`
	Width      *int    `json:"width,omitempty"`
	Height     *int    `json:"height,omitempty"`
}

// SimplifiedProbe is the flat, stable-shaped reduction of a raw probe
// result. Immutable once built.
type SimplifiedProbe struct {
	Filename     string             `json:"filename"`
	FormatName   string             `json:"format_name"`
	Duration     string             `json:"duration"`
	Size         string             `json:"size"`
	BitRate      string             `json:"bit_rate"`
	CreationTime *string            `json:"creation_time"`
	Streams      []SimplifiedStream `json:"streams"`
}

// acceptedFormats holds the format_name values (as ffprobe reports them)
// that conversion accepts. The literal strings are tied to ffprobe's
// canonical naming and are not portable to other probing tools.
var acceptedFormats = map[string]struct{}{
	"mov,mp4,m4a,3gp,3g2,mj2": {},
	"matroska,webm":           {},
	"avi":                     {},
	"quicktime, mov":          {},
	"rawvideo":                {},
}

// Simplify reduces a raw probe result to its stable shape. It is total over
// any result carrying the mandatory format and streams sections: missing
// optional keys become nil fields, never an error.
func Simplify(raw *ProbeResult) (*SimplifiedProbe, error) {
	if raw == nil || raw.Format == nil {
		return nil, fmt.Errorf("%w: missing format section", ErrMalformedProbe)
	}
	if raw.Streams == nil {
		return nil, fmt.Errorf("%w: missing streams section", ErrMalformedProbe)
	}

	probe := &SimplifiedProbe{
		Filename:   raw.Format.Filename,
		FormatName: raw.Format.FormatName,
		Duration:   raw.Format.Duration,
		Size:       raw.Format.Size,
		BitRate:    raw.Format.BitRate,
		Streams:    make([]SimplifiedStream, 0, len(raw.Streams)),
	}

	if ct, ok := raw.Format.Tags["creation_time"]; ok {
		probe.CreationTime = &ct
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		probe.Streams = append(probe.Streams, SimplifiedStream{
			CodecName:  s.CodecName,
			CodecType:  s.CodecType,
			Duration:   s.Duration,
			BitRate:    s.BitRate,
			FrameRate:  s.RFrameRate,
			ColorSpace: s.ColorSpace,
			ColorRange: s.ColorRange,
			Width:      s.Width,
			Height:     s.Height,
		})
	}

	return probe, nil
}

// HasVideoStream reports whether at least one stream has codec_type "video".
func (p *SimplifiedProbe) HasVideoStream() bool {
	for i := range p.Streams {
		s := &p.Streams[i]
		if s.CodecType != nil && *s.CodecType == "video" {
			return true
		}
	}
	return false
}

// Validate checks container format and stream suitability for conversion.
// It returns false plus a diagnostic instead of an error; the caller decides
// what to do with a rejected file.
func (p *SimplifiedProbe) Validate() (bool, string) {
	if _, ok := acceptedFormats[p.FormatName]; !ok {
		return false, fmt.Sprintf("invalid format: %s", p.FormatName)
	}
	if !p.HasVideoStream() {
		return false, "no valid video stream"
	}
	return true, ""
}

// Summary renders a one-shot human-readable description: duration, first
// stream frame rate and dimensions, creation time ("Unknown" when the tag
// was absent) and size. Requires at least one stream.
func (p *SimplifiedProbe) Summary() (string, error) {
	if len(p.Streams) == 0 {
		return "", ErrNoStreams
	}
	first := &p.Streams[0]

	frameRate := "unknown"
	if first.FrameRate != nil {
		if fr := FormatFrameRate(*first.FrameRate); fr != "" {
			frameRate = fr
		}
	}

	dimensions := "unknown"
	if first.Width != nil && first.Height != nil {
		dimensions = fmt.Sprintf("%dx%d", *first.Width, *first.Height)
	}

	created := "Unknown"
	if p.CreationTime != nil {
		created = *p.CreationTime
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Duration:   %s\n", FormatDuration(ParseDuration(p.Duration)))
	fmt.Fprintf(&b, "Frame rate: %s\n", frameRate)
	fmt.Fprintf(&b, "Dimensions: %s\n", dimensions)
	fmt.Fprintf(&b, "Created:    %s\n", created)
	fmt.Fprintf(&b, "Size:       %s", humanize.Bytes(uint64(ParseSize(p.Size))))
	return b.String(), nil
}
