package domain

import (
	"time"

	"github.com/google/uuid"
)

type RunKind string

const (
	RunKindConvert RunKind = "convert"
	RunKindFrames  RunKind = "frames"
)

type RunStatus string

const (
	RunStatusDone   RunStatus = "done"
	RunStatusFailed RunStatus = "failed"
)

// Run is one recorded conversion or frame-extraction invocation.
type Run struct {
	ID              string
	Kind            RunKind
	InputPath       string
	OutputPath      string
	Format          string
	Stride          int
	FramesRead      int
	FramesExtracted int
	Status          RunStatus
	ErrorMessage    string
	CreatedAt       time.Time
}

func NewRun(kind RunKind, inputPath string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		InputPath: inputPath,
		Status:    RunStatusDone,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *Run) MarkFailed(err error) {
	r.Status = RunStatusFailed
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}
