package domain

import "github.com/google/uuid"

// WorkUnit is one node of a work's hierarchical breakdown. A node is exactly
// one of two variants: a Branch owning an ordered list of children, or a
// Leaf carrying its current production stage. The variants share only
// identity and sibling position.
type WorkUnit interface {
	UnitID() string
	UnitIndex() int
	setIndex(i int)
}

// Leaf is a work unit with no children. StageIndex is the 0-based position
// in the work's stage table; 0 means not started. A StageIndex at or past
// the table length (possible after the table shrinks) reads as "final stage
// reached" wherever hours are computed.
type Leaf struct {
	ID         string
	Index      int // 1-based position among siblings
	StageIndex int
}

// Branch is a work unit whose children are themselves work units.
type Branch struct {
	ID       string
	Index    int // 1-based position among siblings
	Children []WorkUnit
}

func (l *Leaf) UnitID() string { return l.ID }
func (l *Leaf) UnitIndex() int { return l.Index }
func (l *Leaf) setIndex(i int) { l.Index = i }

func (b *Branch) UnitID() string { return b.ID }
func (b *Branch) UnitIndex() int { return b.Index }
func (b *Branch) setIndex(i int) { b.Index = i }

// NewLeaf creates a not-started leaf with a fresh id.
func NewLeaf() *Leaf {
	return &Leaf{ID: uuid.New().String()}
}

// NewHierarchy builds a uniform forest of depth len(counts): counts[0] top
// units, each with counts[1] children per node, and so on; the last level
// yields leaves at stage 0. Non-positive counts are coerced to 1.
func NewHierarchy(counts []int) []WorkUnit {
	if len(counts) == 0 {
		return nil
	}
	n := coerceCount(counts[0])
	units := make([]WorkUnit, 0, n)
	for i := 0; i < n; i++ {
		units = append(units, buildSubtree(counts[1:]))
	}
	RecalculateIndices(units)
	return units
}

// NewTopUnit builds a single top-level unit shaped like the members of a
// NewHierarchy(counts) forest. The caller appends it and renumbers.
func NewTopUnit(counts []int) WorkUnit {
	if len(counts) == 0 {
		return NewLeaf()
	}
	return buildSubtree(counts[1:])
}

func buildSubtree(counts []int) WorkUnit {
	if len(counts) == 0 {
		return NewLeaf()
	}
	n := coerceCount(counts[0])
	b := &Branch{ID: uuid.New().String(), Children: make([]WorkUnit, 0, n)}
	for i := 0; i < n; i++ {
		b.Children = append(b.Children, buildSubtree(counts[1:]))
	}
	return b
}

func coerceCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// FindUnit searches the forest depth-first for the unit with the given id.
func FindUnit(units []WorkUnit, id string) (WorkUnit, bool) {
	for _, u := range units {
		if u.UnitID() == id {
			return u, true
		}
		if b, isBranch := u.(*Branch); isBranch {
			if found, ok := FindUnit(b.Children, id); ok {
				return found, ok
			}
		}
	}
	return nil, false
}

// RecalculateIndices renumbers every unit's Index to its 1-based position
// within its sibling list, depth-first, mutating in place. Call after any
// structural mutation.
func RecalculateIndices(units []WorkUnit) {
	for i, u := range units {
		u.setIndex(i + 1)
		if b, isBranch := u.(*Branch); isBranch {
			RecalculateIndices(b.Children)
		}
	}
}

// AdvanceLeafStage moves the identified leaf to its next stage, wrapping to
// stage 0 past the last stage. Unknown ids, branch ids and non-positive
// stage counts are silent no-ops; the return reports whether a leaf moved.
func AdvanceLeafStage(units []WorkUnit, id string, stageCount int) bool {
	if stageCount <= 0 {
		return false
	}
	u, ok := FindUnit(units, id)
	if !ok {
		return false
	}
	leaf, isLeaf := u.(*Leaf)
	if !isLeaf {
		return false
	}
	leaf.StageIndex = (leaf.StageIndex + 1) % stageCount
	return true
}

// SetChildCount grows or truncates the identified branch's child list to n,
// appending fresh stage-0 leaves when growing, then renumbers. Unknown or
// leaf ids are silent no-ops. n is coerced to at least 1.
func SetChildCount(units []WorkUnit, id string, n int) bool {
	u, ok := FindUnit(units, id)
	if !ok {
		return false
	}
	branch, isBranch := u.(*Branch)
	if !isBranch {
		return false
	}
	n = coerceCount(n)
	for len(branch.Children) < n {
		branch.Children = append(branch.Children, NewLeaf())
	}
	if len(branch.Children) > n {
		branch.Children = branch.Children[:n]
	}
	RecalculateIndices(branch.Children)
	return true
}

// RemoveUnit removes the identified unit from the forest (or from whichever
// branch owns it) and renumbers the affected sibling list. Returns the
// possibly shorter forest and whether anything was removed.
func RemoveUnit(units []WorkUnit, id string) ([]WorkUnit, bool) {
	for i, u := range units {
		if u.UnitID() == id {
			units = append(units[:i], units[i+1:]...)
			RecalculateIndices(units)
			return units, true
		}
		if b, isBranch := u.(*Branch); isBranch {
			if children, ok := RemoveUnit(b.Children, id); ok {
				b.Children = children
				return units, true
			}
		}
	}
	return units, false
}

// CollectLeaves returns every leaf of the forest in depth-first,
// left-to-right order. Every metric computation walks this sequence.
func CollectLeaves(units []WorkUnit) []*Leaf {
	var leaves []*Leaf
	for _, u := range units {
		switch n := u.(type) {
		case *Leaf:
			leaves = append(leaves, n)
		case *Branch:
			leaves = append(leaves, CollectLeaves(n.Children)...)
		}
	}
	return leaves
}

// DepthOf returns the number of branch ancestors of the identified unit
// (0 = top level). ok is false when the id is not in the forest.
func DepthOf(units []WorkUnit, id string) (int, bool) {
	for _, u := range units {
		if u.UnitID() == id {
			return 0, true
		}
		if b, isBranch := u.(*Branch); isBranch {
			if d, ok := DepthOf(b.Children, id); ok {
				return d + 1, true
			}
		}
	}
	return 0, false
}

// SubtreeDepth returns the number of levels under and including the unit:
// 1 for a leaf, 1 + max child depth for a branch.
func SubtreeDepth(u WorkUnit) int {
	b, isBranch := u.(*Branch)
	if !isBranch {
		return 1
	}
	max := 0
	for _, c := range b.Children {
		if d := SubtreeDepth(c); d > max {
			max = d
		}
	}
	return max + 1
}
