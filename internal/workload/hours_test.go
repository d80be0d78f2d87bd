package workload

import (
	"math/rand"
	"testing"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursAt(t *testing.T) {
	finest := domain.Granularity{ID: "panel", Weight: 1}
	page := domain.Granularity{ID: "page", Weight: 10}

	assert.InDelta(t, 5.0, HoursAt(page, finest, 0.5), 1e-9)
	assert.InDelta(t, 0.5, HoursAt(finest, finest, 0.5), 1e-9)
}

func TestHoursAt_GuardsBadWeights(t *testing.T) {
	finest := domain.Granularity{Weight: 1}
	assert.Zero(t, HoursAt(domain.Granularity{Weight: 0}, finest, 3))
	assert.Zero(t, HoursAt(domain.Granularity{Weight: -2}, finest, 3))
	assert.Zero(t, HoursAt(finest, domain.Granularity{Weight: 0}, 3))
}

func TestBaseHoursFrom_RoundTripsWithHoursAt(t *testing.T) {
	finest := domain.Granularity{ID: "panel", Weight: 2}
	page := domain.Granularity{ID: "page", Weight: 16}

	base := BaseHoursFrom(4, page, finest)
	assert.InDelta(t, 0.5, base, 1e-9)
	assert.InDelta(t, 4.0, HoursAt(page, finest, base), 1e-9)
}

// TestConversionConsistency_Property: hoursAt(G, base) / G.Weight is the
// same for every granularity, within floating tolerance.
func TestConversionConsistency_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		g1 := domain.Granularity{ID: "a", Weight: rng.Intn(100) + 1}
		g2 := domain.Granularity{ID: "b", Weight: rng.Intn(100) + 1}
		finest := domain.Granularity{ID: "f", Weight: rng.Intn(10) + 1}
		base := rng.Float64() * 20

		r1 := HoursAt(g1, finest, base) / float64(g1.Weight)
		r2 := HoursAt(g2, finest, base) / float64(g2.Weight)
		assert.InDelta(t, r1, r2, 1e-9, "trial %d", trial)
	}
}

func TestHoursPerGranularity(t *testing.T) {
	reg := domain.Registry{
		{ID: "book", Weight: 100},
		{ID: "page", Weight: 10},
		{ID: "panel", Weight: 1},
	}
	out := HoursPerGranularity(reg, 0.25)
	require.Len(t, out, 3)
	assert.InDelta(t, 25.0, out["book"], 1e-9)
	assert.InDelta(t, 2.5, out["page"], 1e-9)
	assert.InDelta(t, 0.25, out["panel"], 1e-9)

	assert.Empty(t, HoursPerGranularity(domain.Registry{}, 1))
}
