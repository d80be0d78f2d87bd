package formatter

import (
	"fmt"
	"strings"

	"github.com/Yotsura/mangaflow/internal/domain"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderUnitTree renders a work's unit forest as an indented tree using
// box-drawing connectors. Branches are labelled by their granularity level
// and 1-based index; leaves show their stage label in the stage's color.
func RenderUnitTree(units []domain.WorkUnit, stages domain.StageTable, reg domain.Registry) string {
	var b strings.Builder
	renderLevel(&b, units, stages, reg, 0, "")
	return strings.TrimRight(b.String(), "\n")
}

func renderLevel(b *strings.Builder, units []domain.WorkUnit, stages domain.StageTable, reg domain.Registry, level int, prefix string) {
	for i, u := range units {
		last := i == len(units)-1
		connector := treeBranch
		childPrefix := prefix + treePipe
		if last {
			connector = treeCorner
			childPrefix = prefix + "   "
		}
		if level == 0 {
			connector = ""
			childPrefix = ""
		}

		switch n := u.(type) {
		case *domain.Branch:
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, Bold(levelLabel(reg, level, n.Index)))
			renderLevel(b, n.Children, stages, reg, level+1, childPrefix)
		case *domain.Leaf:
			fmt.Fprintf(b, "%s%s%s %s\n", prefix, connector,
				levelLabel(reg, level, n.Index), stageBadge(stages, n.StageIndex))
		}
	}
}

// levelLabel names a unit by its granularity ("Page 3") or falls back to a
// bare index when the registry is shallower than the tree.
func levelLabel(reg domain.Registry, level, index int) string {
	if level < len(reg) {
		return fmt.Sprintf("%s %d", reg[level].Label, index)
	}
	return fmt.Sprintf("#%d", index)
}

func stageBadge(stages domain.StageTable, stageIndex int) string {
	if len(stages) == 0 {
		return Dim(fmt.Sprintf("stage %d", stageIndex+1))
	}
	if stageIndex >= len(stages) {
		stageIndex = len(stages) - 1
	}
	st := stages[stageIndex]
	return StageStyle(st).Render(st.Label)
}
