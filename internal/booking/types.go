// Package booking compiles staff booking intent into appointment payloads the
// scheduling vendor accepts. The vendor enforces one opaque rule above all
// others: an appointment's end timestamp must equal the latest end timestamp
// among its non-buffer segments. Every code path here exists to satisfy that
// rule by construction.
package booking

import (
	"time"

	"github.com/barkwell/frontdesk/internal/catalog"
)

// Request is the staff intent for one booking.
type Request struct {
	// Family is the explicit classification tag when the UI supplies one.
	// When empty, the compiler classifies from the primary service id.
	Family catalog.Family `json:"family,omitempty"`
	// ServiceIDs holds the requested services: one primary plus optional
	// add-ons, or a single boarding service.
	ServiceIDs []string `json:"serviceIds"`
	// Start is the requested begin instant (check-in time for boarding).
	Start time.Time `json:"start"`
	// End is optional and only consulted as the boarding checkout hint.
	End        *time.Time `json:"end,omitempty"`
	PetID      string     `json:"petId"`
	ClientID   string     `json:"clientId,omitempty"`
	ResourceID string     `json:"resourceId,omitempty"`
}

// Segment is one service line item inside a compiled appointment.
type Segment struct {
	ServiceID      string    `json:"serviceId"`
	ResourceID     string    `json:"resourceId"`
	Begin          time.Time `json:"begin"`
	End            time.Time `json:"end"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	// ParentServiceID references the primary segment's service when this
	// segment is an add-on; empty otherwise.
	ParentServiceID string `json:"parentServiceId,omitempty"`
}

// Appointment is the compiled, vendor-ready payload.
type Appointment struct {
	LocationID string         `json:"locationId"`
	ResourceID string         `json:"resourceId"`
	ClientID   string         `json:"clientId,omitempty"`
	PetID      string         `json:"petId"`
	Family     catalog.Family `json:"family"`
	Begin      time.Time      `json:"begin"`
	End        time.Time      `json:"end"`
	Segments   []Segment      `json:"segments"`
	Note       string         `json:"note"`
}

// Result is the outcome of a submitted booking.
type Result struct {
	AppointmentID string       `json:"appointmentId"`
	Appointment   *Appointment `json:"appointment"`
	CheckedIn     bool         `json:"checkedIn"`
	// CheckInWarning is set when auto check-in was attempted and failed.
	// The booking itself still succeeded.
	CheckInWarning string `json:"checkInWarning,omitempty"`
}

// maxSegmentEnd returns the latest end instant among the segments. The
// vendor rejects any appointment whose end differs from this.
func maxSegmentEnd(segments []Segment) time.Time {
	var max time.Time
	for _, s := range segments {
		if s.End.After(max) {
			max = s.End
		}
	}
	return max
}
