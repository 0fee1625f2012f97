package square

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/barkwell/frontdesk/internal/booking"
	"github.com/barkwell/frontdesk/internal/catalog"
	"github.com/barkwell/frontdesk/internal/clients"
)

// Adapter binds the vendor client to the catalog, booking, and roster
// interfaces the core consumes.
type Adapter struct {
	client *Client
}

// NewAdapter wraps a vendor client.
func NewAdapter(client *Client) *Adapter {
	if client == nil {
		panic("square: client required")
	}
	return &Adapter{client: client}
}

// ListBookingServices implements catalog.PrimarySource.
func (a *Adapter) ListBookingServices(ctx context.Context) ([]catalog.BookingServiceEntry, error) {
	services, err := a.client.ListBookingServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.BookingServiceEntry, 0, len(services))
	for _, s := range services {
		entry := catalog.BookingServiceEntry{
			ID:                 s.ID,
			Name:               s.Name,
			Family:             s.Category,
			CatalogDurationMin: s.DurationMinutes,
			IsAddOn:            s.AddonOnly,
			MultiplierEnabled:  s.MultiplierEnabled,
		}
		if s.UnitSpan != nil {
			entry.UnitSpan = &catalog.UnitSpan{Min: s.UnitSpan.MinMinutes, Max: s.UnitSpan.MaxMinutes}
		}
		if s.PriceMoney != nil {
			entry.PriceCents = s.PriceMoney.Amount
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListCatalogItems implements catalog.SecondarySource.
func (a *Adapter) ListCatalogItems(ctx context.Context) ([]catalog.CatalogItemEntry, error) {
	items, err := a.client.ListCatalogItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.CatalogItemEntry, 0, len(items))
	for _, item := range items {
		entry := catalog.CatalogItemEntry{ID: item.ID}
		for _, pe := range item.PriceEntries {
			price := catalog.PriceEntry{}
			if pe.ExistingListPriceMoney != nil {
				price.ExistingListPriceCents = pe.ExistingListPriceMoney.Amount
			}
			if pe.PriceMoney != nil {
				price.PriceCents = pe.PriceMoney.Amount
			}
			entry.PriceEntries = append(entry.PriceEntries, price)
		}
		if item.PriceMoney != nil {
			entry.PriceCents = item.PriceMoney.Amount
		}
		out = append(out, entry)
	}
	return out, nil
}

// CreateAppointment implements booking.Submitter. Client-side invalid
// payload rejections (4xx) surface as booking.UpstreamValidationError so the
// caller sees the vendor's diagnostic verbatim.
func (a *Adapter) CreateAppointment(ctx context.Context, appt *booking.Appointment) (string, error) {
	var req createBookingRequest
	req.Booking.LocationID = appt.LocationID
	req.Booking.TeamMemberID = appt.ResourceID
	req.Booking.CustomerID = appt.ClientID
	req.Booking.PetID = appt.PetID
	req.Booking.StartAt = appt.Begin.UTC().Format(time.RFC3339)
	req.Booking.EndAt = appt.End.UTC().Format(time.RFC3339)
	req.Booking.Note = appt.Note
	req.Booking.Segments = make([]appointmentSegment, 0, len(appt.Segments))
	for _, s := range appt.Segments {
		req.Booking.Segments = append(req.Booking.Segments, appointmentSegment{
			ServiceID:       s.ServiceID,
			TeamMemberID:    s.ResourceID,
			StartAt:         s.Begin.UTC().Format(time.RFC3339),
			EndAt:           s.End.UTC().Format(time.RFC3339),
			PriceMoney:      Money{Amount: s.UnitPriceCents, Currency: "USD"},
			ParentServiceID: s.ParentServiceID,
		})
	}

	id, err := a.client.CreateBooking(ctx, req)
	if err != nil {
		var he *httpError
		if errors.As(err, &he) && he.StatusCode >= http.StatusBadRequest && he.StatusCode < http.StatusInternalServerError {
			return "", &booking.UpstreamValidationError{StatusCode: he.StatusCode, Detail: he.Detail}
		}
		return "", err
	}
	return id, nil
}

// CheckIn implements booking.CheckInSubmitter.
func (a *Adapter) CheckIn(ctx context.Context, appointmentID string) error {
	return a.client.CheckInBooking(ctx, appointmentID)
}

// ListClientRecords implements clients.Source.
func (a *Adapter) ListClientRecords(ctx context.Context) ([]clients.Record, error) {
	rows, err := a.client.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]clients.Record, 0, len(rows))
	for _, row := range rows {
		rec := clients.Record{ID: row.ID, Name: row.Name, Phone: row.Phone, Email: row.Email}
		for _, p := range row.Pets {
			rec.Pets = append(rec.Pets, clients.Pet{ID: p.ID, Name: p.Name, Breed: p.Breed})
		}
		out = append(out, rec)
	}
	return out, nil
}
