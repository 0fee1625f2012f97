package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/barkwell/frontdesk/internal/booking"
	"github.com/barkwell/frontdesk/internal/catalog"
)

func testAppointment() *booking.Appointment {
	begin := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	return &booking.Appointment{
		LocationID: "loc-1",
		PetID:      "dog-1",
		ClientID:   "client-1",
		Family:     catalog.FamilySpa,
		Begin:      begin,
		End:        begin.Add(16 * time.Minute),
		Segments: []booking.Segment{
			{ServiceID: "bath", UnitPriceCents: 2500},
			{ServiceID: "townie", UnitPriceCents: 4500},
		},
	}
}

func TestRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO booking_history").
		WithArgs(pgxmock.AnyArg(), "appt-1", "spa", "dog-1", "client-1",
			pgxmock.AnyArg(), pgxmock.AnyArg(), 2, int64(7000), false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepositoryWithDB(mock)
	if err := repo.Record(context.Background(), "appt-1", testAppointment(), false); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMarkCheckedIn(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE booking_history").
		WithArgs("appt-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewRepositoryWithDB(mock)
	if err := repo.MarkCheckedIn(context.Background(), "appt-1"); err != nil {
		t.Fatalf("MarkCheckedIn error: %v", err)
	}
}

func TestMarkCheckedInUnknownAppointment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE booking_history").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRepositoryWithDB(mock)
	if err := repo.MarkCheckedIn(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unrecorded appointment")
	}
}

func TestListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "appointment_id", "family", "pet_id", "client_id",
		"begin_at", "end_at", "segment_count", "total_price_cents", "checked_in", "created_at",
	}).AddRow(
		uuid.New(), "appt-1", "daycare", "dog-1", "client-1",
		now, now.Add(10*time.Hour), 1, int64(3900), true, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM booking_history").
		WithArgs(50).
		WillReturnRows(rows)

	repo := NewRepositoryWithDB(mock)
	entries, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(entries) != 1 || entries[0].AppointmentID != "appt-1" || !entries[0].CheckedIn {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
