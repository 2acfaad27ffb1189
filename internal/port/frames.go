package port

import "context"

// FrameSource is a sequential reader over decoded video frames. It is a
// scoped resource: exclusively owned by one extraction call and released
// exactly once.
type FrameSource interface {
	// FPS returns the reported frame rate. Best effort; may be 0.
	FPS() float64
	// FrameCount returns the reported total frame count. Best effort;
	// may be 0 or inaccurate for some containers.
	FrameCount() int
	// Read returns the next encoded frame. ok is false on clean end of
	// stream; err is set on an unrecoverable decode failure.
	Read() (frame []byte, ok bool, err error)
	// Release frees the underlying decoder. Safe to call more than once.
	Release() error
}

// VideoOpener opens a frame source over a video file.
type VideoOpener interface {
	Open(ctx context.Context, path string) (FrameSource, error)
}

// FrameWriter persists one encoded frame as a standalone image file.
type FrameWriter interface {
	WriteFrame(path string, frame []byte) error
}
