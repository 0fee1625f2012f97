package booking

import (
	"time"

	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// Sequencer lays out service segments back to back from a start instant.
// The first id is the primary service; every later segment links back to it.
// Because timing is strictly sequential, the final segment's end is the
// latest end by construction, which is exactly what the vendor validates.
type Sequencer struct {
	cache     *catalog.Cache
	resources *ResourceMap
	// primarySpaServiceID anchors all-add-on requests: add-ons cannot be
	// booked without a parent, so one is synthesized.
	primarySpaServiceID string
	logger              *logging.Logger
}

// NewSequencer creates a sequencer over the catalog cache and resource table.
func NewSequencer(cache *catalog.Cache, resources *ResourceMap, primarySpaServiceID string, logger *logging.Logger) *Sequencer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sequencer{
		cache:               cache,
		resources:           resources,
		primarySpaServiceID: primarySpaServiceID,
		logger:              logger,
	}
}

// Sequence produces gap-free, time-ordered segments for the requested
// services. Callers must reject empty id lists before invoking.
func (s *Sequencer) Sequence(start time.Time, serviceIDs []string, resourceOverride string) []Segment {
	ids := serviceIDs
	if s.allAddOns(ids) {
		s.logger.Info("all requested services are add-ons, prepending primary spa service",
			"primary_service_id", s.primarySpaServiceID,
			"requested", ids,
		)
		ids = append([]string{s.primarySpaServiceID}, ids...)
	}

	segments := make([]Segment, 0, len(ids))
	cursor := start
	for i, id := range ids {
		duration := time.Duration(s.cache.ResolveDuration(id)) * time.Minute
		seg := Segment{
			ServiceID:      id,
			ResourceID:     s.resources.Assign(id, resourceOverride),
			Begin:          cursor,
			End:            cursor.Add(duration),
			UnitPriceCents: s.cache.UnitPriceCents(id),
		}
		if i > 0 {
			seg.ParentServiceID = ids[0]
		}
		cursor = seg.End
		segments = append(segments, seg)
	}
	return segments
}

// allAddOns reports whether every requested id is flagged add-on-only.
// Unknown ids count as primaries, so catalog misses never trigger the
// synthetic anchor.
func (s *Sequencer) allAddOns(ids []string) bool {
	if len(ids) == 0 || s.primarySpaServiceID == "" {
		return false
	}
	for _, id := range ids {
		if !s.cache.IsAddOn(id) {
			return false
		}
	}
	return true
}
