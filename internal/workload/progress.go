package workload

import (
	"math"

	"github.com/Yotsura/mangaflow/internal/domain"
)

// Summary is the workload report for one work.
type Summary struct {
	LeafCount      int
	TotalHours     float64
	CompletedHours float64
	RemainingHours float64
	Percent        int // rounded, 0 when TotalHours is 0
}

// Cumulative returns the running sum of stage costs: cumulative[i] is the
// hours one leaf has consumed once stage i is done. Unset costs count as 0.
func Cumulative(stages domain.StageTable) []float64 {
	cum := make([]float64, len(stages))
	var sum float64
	for i, s := range stages {
		sum += s.BaseHoursOrZero()
		cum[i] = sum
	}
	return cum
}

// TotalPerLeaf is the full cost of carrying one leaf through every stage.
func TotalPerLeaf(stages domain.StageTable) float64 {
	cum := Cumulative(stages)
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1]
}

// LeafCompletedHours is the hours a leaf at the given stage index has
// consumed: nothing at stage 0, everything at or past the table's end
// (stages can outlive a shrinking table), otherwise the cumulative cost.
func LeafCompletedHours(cum []float64, stageIndex int) float64 {
	if len(cum) == 0 || stageIndex <= 0 {
		return 0
	}
	if stageIndex >= len(cum) {
		return cum[len(cum)-1]
	}
	return cum[stageIndex]
}

// Summarize computes the live workload report by scanning every leaf of the
// forest against the stage table.
func Summarize(units []domain.WorkUnit, stages domain.StageTable) Summary {
	cum := Cumulative(stages)
	leaves := domain.CollectLeaves(units)

	s := Summary{LeafCount: len(leaves)}
	s.TotalHours = TotalPerLeaf(stages) * float64(len(leaves))
	for _, leaf := range leaves {
		s.CompletedHours += LeafCompletedHours(cum, leaf.StageIndex)
	}
	finish(&s)
	return s
}

func finish(s *Summary) {
	s.RemainingHours = math.Max(0, s.TotalHours-s.CompletedHours)
	if s.TotalHours > 0 {
		s.Percent = int(math.Round(100 * s.CompletedHours / s.TotalHours))
	}
}
