package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProbe wraps a failure reported by the external probe tool. The
	// tool's stderr is attached by the adapter.
	ErrProbe = errors.New("probe failed")

	// ErrMalformedProbe marks a probe result missing its mandatory
	// format or streams sections.
	ErrMalformedProbe = errors.New("malformed probe result")

	// ErrNoStreams is returned when a summary is requested for a probe
	// with an empty stream list.
	ErrNoStreams = errors.New("probe result has no streams")

	// ErrSameFormat signals that input and resolved output extensions are
	// equal, so the conversion was skipped. Informational, not fatal.
	ErrSameFormat = errors.New("input and output formats are identical")

	// ErrTranscode wraps a failure reported by the external transcode tool.
	ErrTranscode = errors.New("transcode failed")

	// ErrOpen marks a video the decode capability could not open.
	ErrOpen = errors.New("cannot open video")

	// ErrWrite marks a failed frame image write.
	ErrWrite = errors.New("frame write failed")

	// ErrPrecondition marks invalid construction input, such as a wrong
	// container extension or a non-positive sampling stride.
	ErrPrecondition = errors.New("precondition failed")
)

// DecodeError reports an unrecoverable mid-stream decode failure. LastFrame
// is the index of the last frame read successfully, -1 when none was.
type DecodeError struct {
	LastFrame int
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed after frame %d: %v", e.LastFrame, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
