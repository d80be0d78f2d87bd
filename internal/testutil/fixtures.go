package testutil

import (
	"time"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/google/uuid"
)

// Work options
type WorkOption func(*domain.Work)

func WithDeadline(d time.Time) WorkOption {
	return func(w *domain.Work) {
		w.Deadline = &d
	}
}

func WithWorkStatus(s domain.WorkStatus) WorkOption {
	return func(w *domain.Work) {
		w.Status = s
	}
}

func WithUnits(counts ...int) WorkOption {
	return func(w *domain.Work) {
		w.Units = domain.NewHierarchy(counts)
	}
}

// NewTestWork builds an in-progress work with the standard four-stage
// pipeline and a book/page/panel registry.
func NewTestWork(title string, opts ...WorkOption) *domain.Work {
	now := time.Now().UTC()
	w := &domain.Work{
		ID:            uuid.New().String(),
		Title:         title,
		Status:        domain.WorkInProgress,
		Stages:        NewTestStages(),
		Granularities: NewTestRegistry(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTestStages returns the standard test pipeline: costs 3, 1, unset, 0.5
// at the finest granularity.
func NewTestStages() domain.StageTable {
	h := func(v float64) *float64 { return &v }
	return domain.StageTable{
		{ID: 1, Label: "Not started", Color: "#928374"},
		{ID: 2, Label: "Name", Color: "#83a598", BaseHours: h(3)},
		{ID: 3, Label: "Rough", Color: "#fabd2f", BaseHours: h(1)},
		{ID: 4, Label: "Ink", Color: "#fb4934"},
		{ID: 5, Label: "Tone", Color: "#8ec07c", BaseHours: h(0.5)},
	}
}

// NewTestRegistry returns a three-level registry: book > page > panel.
func NewTestRegistry() domain.Registry {
	return domain.Registry{
		{ID: "book", Label: "Book", Weight: 100, DefaultCount: 1},
		{ID: "page", Label: "Page", Weight: 10, DefaultCount: 4},
		{ID: "panel", Label: "Panel", Weight: 1, DefaultCount: 5},
	}
}
