package domain

// Granularity is one named unit of measure for work (e.g. "page", "panel").
// Weight is relative size: a smaller weight means a finer unit.
type Granularity struct {
	ID           string
	Label        string
	Weight       int
	DefaultCount int
}

// Registry is an ordered set of granularities. Order is coarsest-first as
// configured by the user; the engine never relies on it and re-derives the
// finest unit by scanning for the minimum weight.
type Registry []Granularity

// Finest returns the granularity with the smallest weight, the common basis
// for all hour arithmetic. ok is false for an empty registry.
func (r Registry) Finest() (Granularity, bool) {
	if len(r) == 0 {
		return Granularity{}, false
	}
	finest := r[0]
	for _, g := range r[1:] {
		if g.Weight < finest.Weight {
			finest = g
		}
	}
	return finest, true
}

// ByID looks up a granularity by id. ok is false when the id is unknown.
func (r Registry) ByID(id string) (Granularity, bool) {
	for _, g := range r {
		if g.ID == id {
			return g, true
		}
	}
	return Granularity{}, false
}

// Depth is the work-unit tree depth implied by the registry: one tree level
// per granularity, the finest level being the leaves.
func (r Registry) Depth() int {
	return len(r)
}

// DefaultCounts returns the per-level child counts used when building a
// hierarchy from registry defaults. Non-positive counts are coerced to 1.
func (r Registry) DefaultCounts() []int {
	counts := make([]int, len(r))
	for i, g := range r {
		counts[i] = g.DefaultCount
		if counts[i] < 1 {
			counts[i] = 1
		}
	}
	return counts
}
