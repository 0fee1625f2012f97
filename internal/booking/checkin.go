package booking

import (
	"time"

	"github.com/barkwell/frontdesk/internal/catalog"
)

// DecideAutoCheckIn reports whether a just-created appointment should be
// immediately checked in: same-day daycare only, judged on the business's
// local calendar date. The vendor rejects check-in on future-dated
// appointments with a not-found error, so the policy must not even attempt
// those.
func DecideAutoCheckIn(appt *Appointment, now time.Time, loc *time.Location) bool {
	if appt == nil || appt.Family != catalog.FamilyDaycare {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	by, bm, bd := appt.Begin.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return by == ny && bm == nm && bd == nd
}
