package domain

import (
	"fmt"
	"math"
	"strconv"
)

// ProbeFormat mirrors the container-level section of ffprobe's JSON output.
type ProbeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	FormatLong string            `json:"format_long_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	NbStreams  int               `json:"nb_streams"`
	Tags       map[string]string `json:"tags"`
}

// ProbeStream mirrors one entry of ffprobe's streams array. Optional keys
// are pointer-typed so a key absent from the JSON decodes to nil instead of
// a zero value indistinguishable from a real zero.
type ProbeStream struct {
	Index      int               `json:"index"`
	CodecName  *string           `json:"codec_name"`
	CodecType  *string           `json:"codec_type"`
	Duration   *string           `json:"duration"`
	BitRate    *string           `json:"bit_rate"`
	RFrameRate *string           `json:"r_frame_rate"`
	ColorSpace *string           `json:"color_space"`
	ColorRange *string           `json:"color_range"`
	NbFrames   *string           `json:"nb_frames"`
	Width      *int              `json:"width"`
	Height     *int              `json:"height"`
	Tags       map[string]string `json:"tags"`
}

// ProbeResult is the raw decoded output of a single ffprobe call. A nil
// Format or nil Streams marks a structurally malformed result; everything
// below that level is optional.
type ProbeResult struct {
	Format  *ProbeFormat  `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// VideoStream returns the first video stream, or nil.
func (p *ProbeResult) VideoStream() *ProbeStream {
	for i := range p.Streams {
		s := &p.Streams[i]
		if s.CodecType != nil && *s.CodecType == "video" {
			return s
		}
	}
	return nil
}

// ParseFrameRate converts an ffprobe rational like "30000/1001" to a float.
// Returns 0 for empty, degenerate ("0/0") or unparseable input.
func ParseFrameRate(fraction string) float64 {
	if fraction == "" || fraction == "0/0" {
		return 0
	}
	var num, den int
	if _, err := fmt.Sscanf(fraction, "%d/%d", &num, &den); err == nil && den > 0 {
		return float64(num) / float64(den)
	}
	return 0
}

// FormatFrameRate renders an ffprobe rational as "25 FPS" or "29.97 FPS".
func FormatFrameRate(fraction string) string {
	fps := ParseFrameRate(fraction)
	if fps == 0 {
		return ""
	}
	if fps == math.Floor(fps) {
		return fmt.Sprintf("%.0f FPS", fps)
	}
	return fmt.Sprintf("%.2f FPS", fps)
}

// ParseDuration converts ffprobe's string duration (seconds) to a float.
func ParseDuration(durationStr string) float64 {
	if durationStr == "" || durationStr == "N/A" {
		return 0
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0
	}
	return duration
}

// FormatDuration renders seconds as "M:SS" or "H:MM:SS".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ParseSize converts ffprobe's string byte count to an int64, 0 on failure.
func ParseSize(sizeStr string) int64 {
	if sizeStr == "" {
		return 0
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return 0
	}
	return size
}
