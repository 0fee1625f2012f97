package square

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/barkwell/frontdesk/internal/booking"
	"github.com/barkwell/frontdesk/internal/catalog"
)

func TestAdapterBookingServiceMapping(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"services": []map[string]any{{
				"id":                 "101",
				"name":               "Standard Boarding",
				"category":           "Boarding",
				"duration_minutes":   20160,
				"unit_span":          map[string]any{"min_minutes": 1440, "max_minutes": 1440},
				"addon_only":         false,
				"multiplier_enabled": true,
				"price_money":        map[string]any{"amount": 0},
			}},
		})
	})
	a := NewAdapter(c)

	entries, err := a.ListBookingServices(context.Background())
	if err != nil {
		t.Fatalf("ListBookingServices error: %v", err)
	}
	want := catalog.BookingServiceEntry{
		ID:                 "101",
		Name:               "Standard Boarding",
		Family:             "Boarding",
		CatalogDurationMin: 20160,
		UnitSpan:           &catalog.UnitSpan{Min: 1440, Max: 1440},
		MultiplierEnabled:  true,
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %+v", entries)
	}
	got := entries[0]
	if got.ID != want.ID || got.Family != want.Family || got.CatalogDurationMin != want.CatalogDurationMin ||
		got.UnitSpan == nil || *got.UnitSpan != *want.UnitSpan || got.MultiplierEnabled != want.MultiplierEnabled {
		t.Fatalf("entry mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestAdapterCreateAppointmentWire(t *testing.T) {
	var captured createBookingRequest
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"booking": map[string]any{"id": "appt-1"}})
	})
	a := NewAdapter(c)

	begin := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	appt := &booking.Appointment{
		LocationID: "loc-1",
		ResourceID: "emp-1",
		PetID:      "dog-1",
		Begin:      begin,
		End:        begin.Add(16 * time.Minute),
		Segments: []booking.Segment{
			{ServiceID: "bath", ResourceID: "emp-1", Begin: begin, End: begin.Add(time.Minute), UnitPriceCents: 2500},
			{ServiceID: "townie", ResourceID: "emp-1", Begin: begin.Add(time.Minute), End: begin.Add(16 * time.Minute), UnitPriceCents: 4500, ParentServiceID: "bath"},
		},
	}
	id, err := a.CreateAppointment(context.Background(), appt)
	if err != nil {
		t.Fatalf("CreateAppointment error: %v", err)
	}
	if id != "appt-1" {
		t.Fatalf("id = %q", id)
	}
	if captured.Booking.EndAt != "2026-03-02T11:16:00Z" {
		t.Fatalf("end_at = %q", captured.Booking.EndAt)
	}
	if len(captured.Booking.Segments) != 2 {
		t.Fatalf("segments = %+v", captured.Booking.Segments)
	}
	if captured.Booking.Segments[1].ParentServiceID != "bath" {
		t.Fatalf("parent linkage lost: %+v", captured.Booking.Segments[1])
	}
	if captured.Booking.Segments[1].EndAt != captured.Booking.EndAt {
		t.Fatal("booking end must equal the last segment end")
	}
}

func TestAdapterValidationErrorMapping(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"detail": "end time must coincide with the end of the last non-buffer segment"}},
		})
	})
	a := NewAdapter(c)

	_, err := a.CreateAppointment(context.Background(), &booking.Appointment{})
	ve, ok := err.(*booking.UpstreamValidationError)
	if !ok {
		t.Fatalf("expected UpstreamValidationError, got %T: %v", err, err)
	}
	if ve.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", ve.StatusCode)
	}
}

func TestAdapterServerErrorNotValidation(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	})
	a := NewAdapter(c)

	_, err := a.CreateAppointment(context.Background(), &booking.Appointment{})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*booking.UpstreamValidationError); ok {
		t.Fatal("5xx must not be reported as a validation rejection")
	}
}

func TestAdapterClientRecords(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"clients": []map[string]any{{
				"id":    "c1",
				"name":  "Jane Doe",
				"phone": "+13035550100",
				"pets":  []map[string]any{{"id": "p1", "name": "Fido", "breed": "Lab"}},
			}},
		})
	})
	a := NewAdapter(c)

	records, err := a.ListClientRecords(context.Background())
	if err != nil {
		t.Fatalf("ListClientRecords error: %v", err)
	}
	if len(records) != 1 || len(records[0].Pets) != 1 || records[0].Pets[0].Name != "Fido" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
