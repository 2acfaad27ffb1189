package port

import "github.com/bnema/vidkit/internal/domain"

// RunStore persists the history of conversion and extraction runs.
type RunStore interface {
	Save(run *domain.Run) error
	ListRecent(limit int) ([]*domain.Run, error)
}
