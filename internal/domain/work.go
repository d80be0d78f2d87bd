package domain

import (
	"errors"
	"time"
)

// Work is one serialized creative work (a volume, a chapter, a doujinshi).
// It owns a forest of work units plus work-scoped copies of the stage table
// and granularity registry, seeded from the user defaults at creation.
type Work struct {
	ID       string
	Title    string
	Status   WorkStatus
	Deadline *time.Time

	Units         []WorkUnit
	Stages        StageTable
	Granularities Registry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddRootUnit appends one top-level unit shaped by the registry's default
// counts and renumbers the top level.
func (w *Work) AddRootUnit() WorkUnit {
	u := NewTopUnit(w.Granularities.DefaultCounts())
	w.Units = append(w.Units, u)
	RecalculateIndices(w.Units)
	return u
}

// LeafCount returns the number of leaves across the whole forest.
func (w *Work) LeafCount() int {
	return len(CollectLeaves(w.Units))
}

// MarkCompleted transitions the work to completed. Archived works must be
// unarchived first.
func (w *Work) MarkCompleted(now time.Time) error {
	if w.Status == WorkArchived {
		return errors.New("cannot complete an archived work")
	}
	w.Status = WorkCompleted
	w.UpdatedAt = now
	return nil
}

// Reopen transitions a completed work back to in progress.
func (w *Work) Reopen(now time.Time) error {
	if w.Status == WorkArchived {
		return errors.New("cannot reopen an archived work")
	}
	w.Status = WorkInProgress
	w.UpdatedAt = now
	return nil
}

// Archive transitions the work to archived from any state.
func (w *Work) Archive(now time.Time) {
	w.Status = WorkArchived
	w.UpdatedAt = now
}

// IsTerminal reports whether the work no longer accepts edits.
func (w *Work) IsTerminal() bool {
	return w.Status == WorkCompleted || w.Status == WorkArchived
}
