package testutil

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
)

// TaskRow options
type TaskRowOption func(*domain.TaskRow)

func WithEstimate(min, est, max int) TaskRowOption {
	return func(r *domain.TaskRow) {
		r.MinimumMinutes = min
		r.EstimatedMinutes = est
		r.MaximumMinutes = max
	}
}

func WithProgress(percent, spent int) TaskRowOption {
	return func(r *domain.TaskRow) {
		r.PercentComplete = percent
		r.TimeSpentMinutes = spent
	}
}

func WithDescription(d string) TaskRowOption {
	return func(r *domain.TaskRow) {
		r.Description = d
	}
}

func NewTestTaskRow(id, parentID int, opts ...TaskRowOption) domain.TaskRow {
	r := domain.TaskRow{
		ID:          id,
		ParentID:    parentID,
		Description: fmt.Sprintf("Task %d", id),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewTestProjectRows returns the rows of a three-level project:
//
//	1 Project
//	├── 2 Design
//	│   ├── 4 Schema    (60 min, 50%)
//	│   └── 5 Screens   (90 min, 20%)
//	└── 3 Build
//	    └── 6 Backend   (120 min, 0%)
func NewTestProjectRows() []domain.TaskRow {
	return []domain.TaskRow{
		NewTestTaskRow(1, 0, WithDescription("Project")),
		NewTestTaskRow(2, 1, WithDescription("Design")),
		NewTestTaskRow(3, 1, WithDescription("Build")),
		NewTestTaskRow(4, 2, WithDescription("Schema"), WithEstimate(45, 60, 90), WithProgress(50, 30)),
		NewTestTaskRow(5, 2, WithDescription("Screens"), WithEstimate(60, 90, 150), WithProgress(20, 20)),
		NewTestTaskRow(6, 3, WithDescription("Backend"), WithEstimate(90, 120, 240)),
	}
}
