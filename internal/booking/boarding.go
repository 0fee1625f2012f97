package booking

import (
	"math"
	"time"

	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// BoardingExpander turns a multi-night stay into one discrete segment per
// night. The vendor's duration check is defined per bookable unit and
// rejects a single segment spanning several nights; it also rejects every
// known duration-override field. Literal repetition of one-unit segments is
// the only accepted representation.
type BoardingExpander struct {
	cache     *catalog.Cache
	resources *ResourceMap
	logger    *logging.Logger
}

// NewBoardingExpander creates an expander over the catalog cache and
// resource table.
func NewBoardingExpander(cache *catalog.Cache, resources *ResourceMap, logger *logging.Logger) *BoardingExpander {
	if logger == nil {
		logger = logging.Default()
	}
	return &BoardingExpander{cache: cache, resources: resources, logger: logger}
}

// Expand emits one segment per night from check-in. Checkout defaults to one
// night after check-in when no hint is supplied. The per-unit price is not
// multiplied: the vendor multiplies automatically for multiplier-enabled
// services with repeated segments.
func (e *BoardingExpander) Expand(serviceID string, checkin time.Time, checkout *time.Time, resourceOverride string) []Segment {
	out := checkin.Add(24 * time.Hour)
	if checkout != nil {
		out = *checkout
	}

	nights := int(math.Round(out.Sub(checkin).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	nightSpan := time.Duration(e.cache.NightSpanMinutes(serviceID)) * time.Minute
	resource := e.resources.Assign(serviceID, resourceOverride)
	price := e.cache.UnitPriceCents(serviceID)

	e.logger.Info("expanding boarding stay",
		"service_id", serviceID,
		"nights", nights,
		"night_span_min", int(nightSpan.Minutes()),
	)

	segments := make([]Segment, 0, nights)
	for i := 0; i < nights; i++ {
		segments = append(segments, Segment{
			ServiceID:      serviceID,
			ResourceID:     resource,
			Begin:          checkin.Add(time.Duration(i) * nightSpan),
			End:            checkin.Add(time.Duration(i+1) * nightSpan),
			UnitPriceCents: price,
		})
	}
	return segments
}
