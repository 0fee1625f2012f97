package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrimary struct {
	services []BookingServiceEntry
	err      error
	calls    int
}

func (f *fakePrimary) ListBookingServices(context.Context) ([]BookingServiceEntry, error) {
	f.calls++
	return f.services, f.err
}

type fakeSecondary struct {
	items []CatalogItemEntry
	err   error
	calls int
}

func (f *fakeSecondary) ListCatalogItems(context.Context) ([]CatalogItemEntry, error) {
	f.calls++
	return f.items, f.err
}

func span(min, max int) *UnitSpan {
	return &UnitSpan{Min: min, Max: max}
}

func TestRefreshMergesPrices(t *testing.T) {
	primary := &fakePrimary{services: []BookingServiceEntry{
		{ID: "101", Name: "Bath", UnitSpan: span(1, 1), PriceCents: 0},
		{ID: "102", Name: "Nails", IsAddOn: true, CatalogDurationMin: 15, PriceCents: 500},
		{ID: "103", Name: "Boarding Night", Family: "Boarding", CatalogDurationMin: 20160, UnitSpan: span(1440, 1440), MultiplierEnabled: true},
	}}
	secondary := &fakeSecondary{items: []CatalogItemEntry{
		{ID: "101", PriceEntries: []PriceEntry{{ExistingListPriceCents: 3500}}},
		{ID: "103", PriceEntries: []PriceEntry{{PriceCents: 5500}}},
		{ID: "999", PriceCents: 100},
	}}
	c := NewCache(primary, secondary, nil, nil)

	require.NoError(t, c.Refresh(context.Background(), true))
	require.Equal(t, 3, c.Len())

	bath, ok := c.Lookup("101")
	require.True(t, ok)
	assert.Equal(t, int64(3500), bath.UnitPriceCents, "existing list price overrides zero booking-catalog price")

	nails, ok := c.Lookup("102")
	require.True(t, ok)
	assert.Equal(t, int64(500), nails.UnitPriceCents, "booking-catalog price kept when retail catalog has no row")

	boarding, ok := c.Lookup("103")
	require.True(t, ok)
	assert.Equal(t, int64(5500), boarding.UnitPriceCents, "plain price entry used when existing list price absent")
	assert.True(t, boarding.MultiplierEnabled)
}

func TestRefreshIdempotentUnlessForced(t *testing.T) {
	primary := &fakePrimary{services: []BookingServiceEntry{{ID: "1", Name: "Daycare"}}}
	secondary := &fakeSecondary{}
	c := NewCache(primary, secondary, nil, nil)

	require.NoError(t, c.Refresh(context.Background(), false))
	require.NoError(t, c.Refresh(context.Background(), false))
	assert.Equal(t, 1, primary.calls, "second unforced refresh must not hit the network")

	require.NoError(t, c.Refresh(context.Background(), true))
	assert.Equal(t, 2, primary.calls, "forced refresh always re-fetches")
}

func TestRefreshKeepsStaleSnapshotOnFailure(t *testing.T) {
	primary := &fakePrimary{services: []BookingServiceEntry{{ID: "1", Name: "Daycare", CatalogDurationMin: 600}}}
	secondary := &fakeSecondary{}
	c := NewCache(primary, secondary, nil, nil)
	require.NoError(t, c.Refresh(context.Background(), true))

	primary.err = errors.New("upstream down")
	err := c.Refresh(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "failed refresh must not clear the cache")
	assert.Equal(t, 600, c.ResolveDuration("1"))
}

func TestRefreshSecondaryFailureKeepsSnapshot(t *testing.T) {
	primary := &fakePrimary{services: []BookingServiceEntry{{ID: "1", Name: "Daycare", CatalogDurationMin: 600}}}
	secondary := &fakeSecondary{}
	c := NewCache(primary, secondary, nil, nil)
	require.NoError(t, c.Refresh(context.Background(), true))

	secondary.err = errors.New("pricing endpoint 500")
	require.Error(t, c.Refresh(context.Background(), true))
	assert.Equal(t, 1, c.Len())
}

func TestResolveDurationPrecedence(t *testing.T) {
	c := NewSeededCache([]ServiceVariation{
		{ID: "span-wins", UnitSpan: span(15, 15), CatalogDurationMin: 0},
		{ID: "span-over-catalog", UnitSpan: span(1440, 1440), CatalogDurationMin: 20160},
		{ID: "catalog-only", CatalogDurationMin: 20160},
		{ID: "neither"},
		{ID: "zero-span", UnitSpan: span(0, 0), CatalogDurationMin: 45},
	}, nil)

	assert.Equal(t, 15, c.ResolveDuration("span-wins"))
	assert.Equal(t, 1440, c.ResolveDuration("span-over-catalog"), "unit span beats the misleading maximum-stay figure")
	assert.Equal(t, 20160, c.ResolveDuration("catalog-only"))
	assert.Equal(t, FallbackDurationMin, c.ResolveDuration("neither"))
	assert.Equal(t, 45, c.ResolveDuration("zero-span"), "zero span falls through to catalog duration")
	assert.Equal(t, FallbackDurationMin, c.ResolveDuration("not-in-cache"))
}

func TestNightSpanIgnoresCatalogDuration(t *testing.T) {
	c := NewSeededCache([]ServiceVariation{
		{ID: "with-span", UnitSpan: span(1440, 1440), CatalogDurationMin: 20160},
		{ID: "no-span", CatalogDurationMin: 20160},
	}, nil)

	assert.Equal(t, 1440, c.NightSpanMinutes("with-span"))
	assert.Equal(t, 1440, c.NightSpanMinutes("no-span"), "maximum stay must never become the night span")
	assert.Equal(t, 1440, c.NightSpanMinutes("missing"))
}

func TestVariationsSorted(t *testing.T) {
	c := NewSeededCache([]ServiceVariation{
		{ID: "2", Name: "Nails"},
		{ID: "1", Name: "Bath"},
	}, nil)
	got := c.Variations()
	require.Len(t, got, 2)
	assert.Equal(t, "Bath", got[0].Name)
}
