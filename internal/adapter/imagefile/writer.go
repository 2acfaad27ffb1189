package imagefile

import (
	"fmt"
	"os"

	"github.com/bnema/vidkit/internal/domain"
	"github.com/bnema/vidkit/internal/port"
)

// Writer persists encoded frames as standalone image files on disk.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteFrame(path string, frame []byte) error {
	if err := os.WriteFile(path, frame, 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, path, err)
	}
	return nil
}

var _ port.FrameWriter = (*Writer)(nil)
