package domain

// Stage is one step of the production pipeline. BaseHours is the cost of
// completing this stage for one unit at the finest granularity; nil means
// the cost is unknown and contributes nothing to totals.
type Stage struct {
	ID        int // stable id, independent of position
	Label     string
	Color     string // display token, e.g. "#fb4934"
	BaseHours *float64
}

// StageTable is the ordered list of production stages. Position 0 is the
// initial "not started" stage.
type StageTable []Stage

// PositionByID maps each stage's stable id to its positional slot.
func (t StageTable) PositionByID() map[int]int {
	pos := make(map[int]int, len(t))
	for i, s := range t {
		pos[s.ID] = i
	}
	return pos
}

// BaseHoursOrZero returns the stage cost, treating unset as 0.
func (s Stage) BaseHoursOrZero() float64 {
	if s.BaseHours == nil {
		return 0
	}
	return *s.BaseHours
}

// NextID returns an id not used by any stage in the table.
func (t StageTable) NextID() int {
	next := 1
	for _, s := range t {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}
