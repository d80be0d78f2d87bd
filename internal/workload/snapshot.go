package workload

import "github.com/Yotsura/mangaflow/internal/domain"

// SummarizeSnapshot computes the workload report from a historical
// counts-per-stage record instead of a live leaf scan. Stage ids resolve to
// positional slots through the current table; a count whose id no longer
// exists is treated as fully complete — stages removed from the table are
// read as work that was finished under the old pipeline.
func SummarizeSnapshot(counts []domain.StageCount, stages domain.StageTable) Summary {
	cum := Cumulative(stages)
	pos := stages.PositionByID()
	perLeaf := TotalPerLeaf(stages)

	var s Summary
	for _, c := range counts {
		if c.Count <= 0 {
			continue
		}
		s.LeafCount += c.Count
		slot, known := pos[c.StageID]
		if !known {
			s.CompletedHours += perLeaf * float64(c.Count)
			continue
		}
		s.CompletedHours += LeafCompletedHours(cum, slot) * float64(c.Count)
	}
	s.TotalHours = perLeaf * float64(s.LeafCount)
	finish(&s)
	return s
}

// CountByStage folds a live forest into snapshot lines, one per stage the
// leaves currently occupy, keyed by the table's stable ids. Leaves past the
// table's end are recorded under the final stage.
func CountByStage(units []domain.WorkUnit, stages domain.StageTable) []domain.StageCount {
	if len(stages) == 0 {
		return nil
	}
	tally := make(map[int]int)
	for _, leaf := range domain.CollectLeaves(units) {
		slot := leaf.StageIndex
		if slot >= len(stages) {
			slot = len(stages) - 1
		}
		tally[stages[slot].ID]++
	}
	counts := make([]domain.StageCount, 0, len(tally))
	for _, st := range stages {
		if n, ok := tally[st.ID]; ok {
			counts = append(counts, domain.StageCount{StageID: st.ID, Count: n})
		}
	}
	return counts
}
