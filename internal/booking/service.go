package booking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/barkwell/frontdesk/internal/observability/metrics"
	"github.com/barkwell/frontdesk/pkg/logging"
)

var bookingTracer = otel.Tracer("frontdesk.internal.booking")

// Submitter creates an appointment on the scheduling vendor.
type Submitter interface {
	CreateAppointment(ctx context.Context, appt *Appointment) (string, error)
}

// CheckInSubmitter marks an existing appointment as checked in.
type CheckInSubmitter interface {
	CheckIn(ctx context.Context, appointmentID string) error
}

// HistoryRecorder persists submitted appointments for the local audit trail.
type HistoryRecorder interface {
	Record(ctx context.Context, appointmentID string, appt *Appointment, checkedIn bool) error
}

// Service runs one booking attempt end to end: compile, submit, then the
// auto-check-in decision. No retries; the transport layer owns those.
type Service struct {
	compiler  *Compiler
	submitter Submitter
	checkins  CheckInSubmitter
	history   HistoryRecorder
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
	loc       *time.Location
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithHistory attaches the local booking-history recorder.
func WithHistory(h HistoryRecorder) ServiceOption {
	return func(s *Service) { s.history = h }
}

// NewService constructs the booking service. loc is the business's local
// timezone used for the same-day check-in decision.
func NewService(compiler *Compiler, submitter Submitter, checkins CheckInSubmitter, loc *time.Location, m *metrics.BookingMetrics, logger *logging.Logger, opts ...ServiceOption) *Service {
	if compiler == nil {
		panic("booking: compiler required")
	}
	if submitter == nil {
		panic("booking: submitter required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &Service{
		compiler:  compiler,
		submitter: submitter,
		checkins:  checkins,
		metrics:   m,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book compiles and submits the request. A check-in failure after a
// successful submit is downgraded to a warning on the result: the
// appointment exists upstream and the booking counts as a success.
func (s *Service) Book(ctx context.Context, req Request) (*Result, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.pet_id", req.PetID),
		attribute.Int("frontdesk.service_count", len(req.ServiceIDs)),
	)

	started := s.now()
	appt, err := s.compiler.Compile(ctx, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking(string(req.Family), "compile_error")
		return nil, err
	}
	s.metrics.ObserveCompileLatency(string(appt.Family), s.now().Sub(started).Seconds())

	apptID, err := s.submitter.CreateAppointment(ctx, appt)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking(string(appt.Family), "submit_error")
		var ve *UpstreamValidationError
		if errors.As(err, &ve) {
			s.logger.Error("vendor rejected compiled appointment",
				"family", string(appt.Family),
				"detail", ve.Detail,
			)
		}
		return nil, err
	}
	s.metrics.ObserveBooking(string(appt.Family), "ok")
	s.logger.Info("appointment created",
		"appointment_id", apptID,
		"family", string(appt.Family),
		"pet_id", appt.PetID,
		"segments", len(appt.Segments),
	)

	res := &Result{AppointmentID: apptID, Appointment: appt}

	if DecideAutoCheckIn(appt, s.now(), s.loc) {
		if err := s.checkIn(ctx, apptID); err != nil {
			s.metrics.ObserveCheckIn("auto", "error")
			s.logger.Warn("auto check-in failed, appointment still created",
				"appointment_id", apptID,
				"error", err,
			)
			res.CheckInWarning = err.Error()
		} else {
			s.metrics.ObserveCheckIn("auto", "ok")
			res.CheckedIn = true
		}
	}

	if s.history != nil {
		if err := s.history.Record(ctx, apptID, appt, res.CheckedIn); err != nil {
			s.logger.Warn("failed to record booking history", "appointment_id", apptID, "error", err)
		}
	}

	return res, nil
}

// CheckIn marks an appointment checked in on behalf of staff.
func (s *Service) CheckIn(ctx context.Context, appointmentID string) error {
	if err := s.checkIn(ctx, appointmentID); err != nil {
		s.metrics.ObserveCheckIn("manual", "error")
		return err
	}
	s.metrics.ObserveCheckIn("manual", "ok")
	return nil
}

func (s *Service) checkIn(ctx context.Context, appointmentID string) error {
	if s.checkins == nil {
		return errors.New("booking: check-in not configured")
	}
	return s.checkins.CheckIn(ctx, appointmentID)
}
