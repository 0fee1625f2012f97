// Package catalog maintains the merged service-variation catalog for the
// business location. Metadata comes from two vendor endpoints that disagree:
// the booking catalog reports unit spans but near-useless prices, and the
// retail catalog reports reliable prices but no unit spans. The cache merges
// both into one canonical record per service.
package catalog

import "context"

// UnitSpan is the reported duration range, in minutes, of one bookable unit.
// For most services min == max (e.g. [1440,1440] for one boarding night).
type UnitSpan struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ServiceVariation is the canonical merged record for one bookable service.
type ServiceVariation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Family is the coarse category reported by the booking catalog
	// ("Boarding", "Daycare", "Spa"). Often empty upstream.
	Family string `json:"family,omitempty"`
	// CatalogDurationMin is the nominal/maximum duration from the booking
	// catalog. For boarding services this is the maximum stay (20160 min =
	// 14 days), not a per-night figure.
	CatalogDurationMin int `json:"catalogDurationMin"`
	// UnitSpan, when reported, is authoritative over CatalogDurationMin.
	UnitSpan          *UnitSpan `json:"unitSpan,omitempty"`
	IsAddOn           bool      `json:"isAddOn"`
	MultiplierEnabled bool      `json:"multiplierEnabled"`
	UnitPriceCents    int64     `json:"unitPriceCents"`
}

// BookingServiceEntry is one row from the primary (booking) catalog source.
type BookingServiceEntry struct {
	ID                 string
	Name               string
	Family             string
	CatalogDurationMin int
	UnitSpan           *UnitSpan
	IsAddOn            bool
	MultiplierEnabled  bool
	PriceCents         int64
}

// PriceEntry is one pricing row attached to a retail catalog item.
type PriceEntry struct {
	ExistingListPriceCents int64
	PriceCents             int64
}

// CatalogItemEntry is one row from the secondary (retail) catalog source,
// consulted only for price reconciliation.
type CatalogItemEntry struct {
	ID           string
	PriceEntries []PriceEntry
	PriceCents   int64
}

// PrimarySource lists bookable services with durations and unit spans.
type PrimarySource interface {
	ListBookingServices(ctx context.Context) ([]BookingServiceEntry, error)
}

// SecondarySource lists retail catalog items carrying reliable prices.
type SecondarySource interface {
	ListCatalogItems(ctx context.Context) ([]CatalogItemEntry, error)
}
