package structure

import (
	"strconv"
	"strings"

	"github.com/Yotsura/mangaflow/internal/domain"
)

// Serialize renders a work-unit forest back into structure notation. ok is
// false when any top-level unit is deeper than three levels or mixes leaf
// and branch children; those shapes have no textual form.
func Serialize(units []domain.WorkUnit) (string, bool) {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		top, isBranch := u.(*domain.Branch)
		if !isBranch {
			return "", false
		}
		text, ok := serializeTop(top)
		if !ok {
			return "", false
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ","), true
}

func serializeTop(top *domain.Branch) (string, bool) {
	if leaves, ok := allLeaves(top.Children); ok {
		return "[" + leafList(leaves) + "]", true
	}

	// One intermediate level: every child must be an all-leaf branch.
	var sb strings.Builder
	sb.WriteByte('[')
	for _, c := range top.Children {
		sub, isBranch := c.(*domain.Branch)
		if !isBranch {
			return "", false
		}
		leaves, ok := allLeaves(sub.Children)
		if !ok {
			return "", false
		}
		sb.WriteByte('[')
		sb.WriteString(leafList(leaves))
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String(), true
}

func allLeaves(units []domain.WorkUnit) ([]*domain.Leaf, bool) {
	if len(units) == 0 {
		return nil, false
	}
	leaves := make([]*domain.Leaf, 0, len(units))
	for _, u := range units {
		leaf, isLeaf := u.(*domain.Leaf)
		if !isLeaf {
			return nil, false
		}
		leaves = append(leaves, leaf)
	}
	return leaves, true
}

// leafList renders leaves as 1-based stage numbers joined by slashes.
func leafList(leaves []*domain.Leaf) string {
	parts := make([]string, len(leaves))
	for i, l := range leaves {
		parts[i] = strconv.Itoa(l.StageIndex + 1)
	}
	return strings.Join(parts, "/")
}
