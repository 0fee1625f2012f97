package booking

import (
	"context"

	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// appointmentNote tags every proxied booking in the vendor's calendar.
const appointmentNote = "Booked via front desk"

// Compiler is the single entry point turning a Request into a vendor-ready
// Appointment satisfying the end-instant rule.
type Compiler struct {
	cache      *catalog.Cache
	classifier *catalog.Classifier
	sequencer  *Sequencer
	expander   *BoardingExpander
	locationID string
	logger     *logging.Logger
}

// NewCompiler wires the compiler over its collaborators.
func NewCompiler(cache *catalog.Cache, classifier *catalog.Classifier, sequencer *Sequencer, expander *BoardingExpander, locationID string, logger *logging.Logger) *Compiler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Compiler{
		cache:      cache,
		classifier: classifier,
		sequencer:  sequencer,
		expander:   expander,
		locationID: locationID,
		logger:     logger,
	}
}

// Compile classifies the request, builds its segments, and assembles the
// appointment. The catalog is force-refreshed first: stale pricing or unit
// spans are judged worse than the extra round trip. A refresh failure is
// logged and absorbed; compilation proceeds against the previous snapshot.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Appointment, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, ErrMissingServiceSelection
	}

	if err := c.cache.Refresh(ctx, true); err != nil {
		c.logger.Warn("catalog refresh failed before compile, using cached snapshot", "error", err)
	}

	family := req.Family
	if family == catalog.FamilyUnknown {
		family = c.classifier.Classify(req.ServiceIDs[0])
	}

	var segments []Segment
	if family == catalog.FamilyBoarding {
		segments = c.expander.Expand(req.ServiceIDs[0], req.Start, req.End, req.ResourceID)
	} else {
		segments = c.sequencer.Sequence(req.Start, req.ServiceIDs, req.ResourceID)
	}

	appt := &Appointment{
		LocationID: c.locationID,
		ResourceID: segments[0].ResourceID,
		ClientID:   req.ClientID,
		PetID:      req.PetID,
		Family:     family,
		Begin:      req.Start,
		End:        maxSegmentEnd(segments),
		Segments:   segments,
		Note:       appointmentNote,
	}

	c.logger.Info("compiled appointment",
		"family", string(family),
		"pet_id", req.PetID,
		"segments", len(segments),
		"begin", appt.Begin,
		"end", appt.End,
	)
	return appt, nil
}
