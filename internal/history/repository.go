// Package history persists a local audit trail of every appointment this
// proxy submits to the vendor.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barkwell/frontdesk/internal/booking"
)

// Entry is one recorded booking.
type Entry struct {
	ID              uuid.UUID
	AppointmentID   string
	Family          string
	PetID           string
	ClientID        string
	Begin           time.Time
	End             time.Time
	SegmentCount    int
	TotalPriceCents int64
	CheckedIn       bool
	CreatedAt       time.Time
}

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides persistence helpers for booking history.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("history: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting mocks for tests.
func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db}
}

const insertEntrySQL = `INSERT INTO booking_history
	(id, appointment_id, family, pet_id, client_id, begin_at, end_at, segment_count, total_price_cents, checked_in, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Record implements booking.HistoryRecorder.
func (r *Repository) Record(ctx context.Context, appointmentID string, appt *booking.Appointment, checkedIn bool) error {
	var total int64
	for _, s := range appt.Segments {
		total += s.UnitPriceCents
	}
	_, err := r.db.Exec(ctx, insertEntrySQL,
		uuid.New(),
		appointmentID,
		string(appt.Family),
		appt.PetID,
		appt.ClientID,
		appt.Begin.UTC(),
		appt.End.UTC(),
		len(appt.Segments),
		total,
		checkedIn,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("history: insert entry: %w", err)
	}
	return nil
}

const markCheckedInSQL = `UPDATE booking_history SET checked_in = TRUE WHERE appointment_id = $1`

// MarkCheckedIn flags an already-recorded appointment as checked in.
func (r *Repository) MarkCheckedIn(ctx context.Context, appointmentID string) error {
	tag, err := r.db.Exec(ctx, markCheckedInSQL, appointmentID)
	if err != nil {
		return fmt.Errorf("history: mark checked in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("history: appointment %s not recorded", appointmentID)
	}
	return nil
}

const listRecentSQL = `SELECT id, appointment_id, family, pet_id, client_id, begin_at, end_at, segment_count, total_price_cents, checked_in, created_at
	FROM booking_history ORDER BY created_at DESC LIMIT $1`

// ListRecent returns the most recently recorded bookings.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.Family, &e.PetID, &e.ClientID, &e.Begin, &e.End, &e.SegmentCount, &e.TotalPriceCents, &e.CheckedIn, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate entries: %w", err)
	}
	return out, nil
}
