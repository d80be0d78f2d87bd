// Package workload converts per-stage effort costs into totals, cumulative
// sums, completion percentages and required pace under the weighted
// granularity system. Every function is a pure computation that degrades to
// zero-valued results on empty or inconsistent configuration instead of
// returning errors.
package workload

import "github.com/Yotsura/mangaflow/internal/domain"

// HoursAt converts a cost expressed at the finest granularity into hours at
// the target granularity: baseHours * (target.Weight / finest.Weight).
// Non-positive weights contribute nothing.
func HoursAt(target, finest domain.Granularity, baseHours float64) float64 {
	if target.Weight <= 0 || finest.Weight <= 0 {
		return 0
	}
	return baseHours * float64(target.Weight) / float64(finest.Weight)
}

// BaseHoursFrom derives the finest-granularity cost from an hours value the
// user entered at any granularity; every other granularity view is then
// re-derived from the single base value so all views stay consistent.
func BaseHoursFrom(entered float64, entryUnit, finest domain.Granularity) float64 {
	if entryUnit.Weight <= 0 || finest.Weight <= 0 {
		return 0
	}
	return entered * float64(finest.Weight) / float64(entryUnit.Weight)
}

// HoursPerGranularity renders one base cost at every granularity of the
// registry, keyed by granularity id. Empty registries yield an empty map.
func HoursPerGranularity(reg domain.Registry, baseHours float64) map[string]float64 {
	out := make(map[string]float64, len(reg))
	finest, ok := reg.Finest()
	if !ok {
		return out
	}
	for _, g := range reg {
		out[g.ID] = HoursAt(g, finest, baseHours)
	}
	return out
}
