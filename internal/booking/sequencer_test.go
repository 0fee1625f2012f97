package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkwell/frontdesk/internal/catalog"
)

func span(min, max int) *catalog.UnitSpan {
	return &catalog.UnitSpan{Min: min, Max: max}
}

func spaCache(t *testing.T) *catalog.Cache {
	t.Helper()
	return catalog.NewSeededCache([]catalog.ServiceVariation{
		{ID: "bath", Name: "Bath", UnitSpan: span(1, 1), UnitPriceCents: 2500},
		{ID: "townie", Name: "Townie Bath", IsAddOn: true, UnitSpan: span(15, 15), UnitPriceCents: 4500},
		{ID: "nails", Name: "Nails", IsAddOn: true, UnitSpan: span(10, 10), UnitPriceCents: 1500},
	}, nil)
}

func newTestSequencer(t *testing.T) *Sequencer {
	t.Helper()
	resources := NewResourceMap(map[string]string{"bath": "emp-bather"}, "emp-spa")
	return NewSequencer(spaCache(t), resources, "bath", nil)
}

func TestSequenceChainsAddOns(t *testing.T) {
	s := newTestSequencer(t)
	start := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

	segs := s.Sequence(start, []string{"bath", "townie"}, "")
	require.Len(t, segs, 2)

	assert.Equal(t, "bath", segs[0].ServiceID)
	assert.Equal(t, start, segs[0].Begin)
	assert.Equal(t, start.Add(1*time.Minute), segs[0].End)
	assert.Empty(t, segs[0].ParentServiceID)
	assert.Equal(t, "emp-bather", segs[0].ResourceID)

	assert.Equal(t, "townie", segs[1].ServiceID)
	assert.Equal(t, segs[0].End, segs[1].Begin, "no gap between segments")
	assert.Equal(t, start.Add(16*time.Minute), segs[1].End)
	assert.Equal(t, "bath", segs[1].ParentServiceID)
	assert.Equal(t, "emp-spa", segs[1].ResourceID, "unmapped service falls back to the spa resource")
}

func TestSequenceGapFreeInvariant(t *testing.T) {
	s := newTestSequencer(t)
	start := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	segs := s.Sequence(start, []string{"bath", "townie", "nails"}, "")
	require.Len(t, segs, 3)
	for i := 0; i < len(segs)-1; i++ {
		assert.Equal(t, segs[i].End, segs[i+1].Begin, "segment %d must end where %d begins", i, i+1)
	}
	for i, seg := range segs {
		if i == 0 {
			assert.Empty(t, seg.ParentServiceID)
		} else {
			assert.Equal(t, segs[0].ServiceID, seg.ParentServiceID)
		}
	}
}

func TestSequenceAllAddOnsPrependsPrimary(t *testing.T) {
	s := newTestSequencer(t)
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	segs := s.Sequence(start, []string{"nails"}, "")
	require.Len(t, segs, 2, "a synthetic primary must anchor the add-on")
	assert.Equal(t, "bath", segs[0].ServiceID)
	assert.Equal(t, "nails", segs[1].ServiceID)
	assert.Equal(t, "bath", segs[1].ParentServiceID)
}

func TestSequenceUnknownServiceFallsBack(t *testing.T) {
	s := newTestSequencer(t)
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	segs := s.Sequence(start, []string{"brand-new-id"}, "")
	require.Len(t, segs, 1, "unknown ids are treated as primaries, no anchor synthesized")
	assert.Equal(t, start.Add(15*time.Minute), segs[0].End, "fallback duration")
	assert.Zero(t, segs[0].UnitPriceCents)
}

func TestSequenceResourceOverride(t *testing.T) {
	s := newTestSequencer(t)
	segs := s.Sequence(time.Now(), []string{"bath", "nails"}, "emp-override")
	for _, seg := range segs {
		assert.Equal(t, "emp-override", seg.ResourceID)
	}
}

func TestSequenceUnitPrices(t *testing.T) {
	s := newTestSequencer(t)
	segs := s.Sequence(time.Now(), []string{"bath", "townie"}, "")
	assert.Equal(t, int64(2500), segs[0].UnitPriceCents)
	assert.Equal(t, int64(4500), segs[1].UnitPriceCents)
}
