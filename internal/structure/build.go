package structure

import (
	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/google/uuid"
)

// BuildForest constructs a work-unit forest from parsed shape data. A unit
// with a single group becomes a branch owning its leaves directly; a unit
// with several groups gains one intermediate branch per group. Deeper
// shapes never come out of Parse, so this pass stops at three levels.
func BuildForest(parsed []ParsedUnit) []domain.WorkUnit {
	units := make([]domain.WorkUnit, 0, len(parsed))
	for _, p := range parsed {
		top := &domain.Branch{ID: uuid.New().String()}
		if len(p.Groups) == 1 {
			top.Children = buildLeaves(p.Groups[0])
		} else {
			for _, group := range p.Groups {
				sub := &domain.Branch{
					ID:       uuid.New().String(),
					Children: buildLeaves(group),
				}
				top.Children = append(top.Children, sub)
			}
		}
		units = append(units, top)
	}
	domain.RecalculateIndices(units)
	return units
}

func buildLeaves(stages []int) []domain.WorkUnit {
	leaves := make([]domain.WorkUnit, 0, len(stages))
	for _, s := range stages {
		leaf := domain.NewLeaf()
		leaf.StageIndex = s
		leaves = append(leaves, leaf)
	}
	return leaves
}
