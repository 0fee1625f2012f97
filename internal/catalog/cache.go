package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/barkwell/frontdesk/internal/observability/metrics"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// FallbackDurationMin is used when a service has no usable duration metadata,
// or is missing from the cache entirely. Booking proceeds rather than failing.
const FallbackDurationMin = 15

// Cache holds the merged service-variation catalog. Refresh replaces the
// whole snapshot at once; readers racing a refresh see either the old or the
// new map, never a partial one.
type Cache struct {
	primary   PrimarySource
	secondary SecondarySource
	logger    *logging.Logger
	metrics   *metrics.BookingMetrics

	mu       sync.RWMutex
	snapshot map[string]ServiceVariation
}

// NewCache creates an empty catalog cache over the two vendor sources.
func NewCache(primary PrimarySource, secondary SecondarySource, logger *logging.Logger, m *metrics.BookingMetrics) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		metrics:   m,
		snapshot:  map[string]ServiceVariation{},
	}
}

// NewSeededCache builds a cache pre-filled with the given variations and no
// upstream sources. Refresh is a no-op unless forced; a forced refresh with
// nil sources fails and leaves the seed intact. Intended for tests.
func NewSeededCache(variations []ServiceVariation, logger *logging.Logger) *Cache {
	c := NewCache(nil, nil, logger, nil)
	for _, v := range variations {
		c.snapshot[v.ID] = v
	}
	return c
}

// Refresh repopulates the cache from both catalog sources. With force=false
// it is a no-op when the cache is already populated. A failed fetch leaves
// the previous snapshot intact: stale-but-available beats empty.
func (c *Cache) Refresh(ctx context.Context, force bool) error {
	if !force && c.Len() > 0 {
		return nil
	}

	if c.primary == nil || c.secondary == nil {
		err := fmt.Errorf("catalog: refresh requested but no sources configured")
		c.logger.Warn("catalog refresh skipped", "error", err)
		c.metrics.ObserveCatalogRefresh("skipped")
		return err
	}

	services, err := c.primary.ListBookingServices(ctx)
	if err != nil {
		c.logger.Error("catalog refresh failed, keeping previous snapshot", "source", "booking", "error", err)
		c.metrics.ObserveCatalogRefresh("error")
		return fmt.Errorf("catalog: list booking services: %w", err)
	}

	items, err := c.secondary.ListCatalogItems(ctx)
	if err != nil {
		c.logger.Error("catalog refresh failed, keeping previous snapshot", "source", "retail", "error", err)
		c.metrics.ObserveCatalogRefresh("error")
		return fmt.Errorf("catalog: list catalog items: %w", err)
	}

	prices := buildPriceLookup(items)

	next := make(map[string]ServiceVariation, len(services))
	for _, s := range services {
		v := ServiceVariation{
			ID:                 s.ID,
			Name:               s.Name,
			Family:             s.Family,
			CatalogDurationMin: s.CatalogDurationMin,
			UnitSpan:           s.UnitSpan,
			IsAddOn:            s.IsAddOn,
			MultiplierEnabled:  s.MultiplierEnabled,
			UnitPriceCents:     s.PriceCents,
		}
		if p, ok := prices[s.ID]; ok && p > 0 {
			v.UnitPriceCents = p
		}
		next[v.ID] = v
	}

	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()

	c.logger.Info("catalog refreshed", "services", len(next), "priced", len(prices))
	c.metrics.ObserveCatalogRefresh("ok")
	return nil
}

// buildPriceLookup extracts the best known price per service id from the
// retail catalog: the first-listed price entry's existing list price wins,
// then that entry's plain price, then the item-level flat price.
func buildPriceLookup(items []CatalogItemEntry) map[string]int64 {
	prices := make(map[string]int64, len(items))
	for _, item := range items {
		var cents int64
		if len(item.PriceEntries) > 0 {
			first := item.PriceEntries[0]
			if first.ExistingListPriceCents > 0 {
				cents = first.ExistingListPriceCents
			} else if first.PriceCents > 0 {
				cents = first.PriceCents
			}
		}
		if cents == 0 && item.PriceCents > 0 {
			cents = item.PriceCents
		}
		if cents > 0 {
			prices[item.ID] = cents
		}
	}
	return prices
}

// Lookup returns the cached variation for a service id.
func (c *Cache) Lookup(id string) (ServiceVariation, bool) {
	c.mu.RLock()
	v, ok := c.snapshot[id]
	c.mu.RUnlock()
	return v, ok
}

// Len reports the number of cached variations.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.snapshot)
	c.mu.RUnlock()
	return n
}

// Variations returns the cached catalog sorted by service name, for the
// staff-facing service picker.
func (c *Cache) Variations() []ServiceVariation {
	c.mu.RLock()
	out := make([]ServiceVariation, 0, len(c.snapshot))
	for _, v := range c.snapshot {
		out = append(out, v)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolveDuration returns the authoritative per-unit duration in minutes for
// a service id. Precedence: unit-span lower bound, then the catalog nominal
// duration, then the fixed fallback. Never fails; booking must proceed even
// for catalog misses.
func (c *Cache) ResolveDuration(id string) int {
	v, ok := c.Lookup(id)
	if !ok {
		c.logger.Warn("catalog miss, using fallback duration; pricing and timing may be wrong",
			"service_id", id,
			"fallback_min", FallbackDurationMin,
		)
		c.metrics.ObserveCatalogMiss()
		return FallbackDurationMin
	}
	if v.UnitSpan != nil && v.UnitSpan.Min > 0 {
		return v.UnitSpan.Min
	}
	if v.CatalogDurationMin > 0 {
		return v.CatalogDurationMin
	}
	return FallbackDurationMin
}

// NightSpanMinutes returns the span of one boarding night for a service: the
// unit-span lower bound when reported, else 24 hours. The catalog nominal
// duration is deliberately ignored here; it reports the maximum stay.
func (c *Cache) NightSpanMinutes(id string) int {
	if v, ok := c.Lookup(id); ok && v.UnitSpan != nil && v.UnitSpan.Min > 0 {
		return v.UnitSpan.Min
	}
	return 24 * 60
}

// UnitPriceCents returns the merged per-unit price for a service, zero on a
// catalog miss.
func (c *Cache) UnitPriceCents(id string) int64 {
	v, _ := c.Lookup(id)
	return v.UnitPriceCents
}

// IsAddOn reports whether the service is flagged add-on-only. Unknown ids
// are treated as primary services.
func (c *Cache) IsAddOn(id string) bool {
	v, ok := c.Lookup(id)
	return ok && v.IsAddOn
}
