package square

// Money is the vendor's amount-in-cents representation.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

// unitSpan is the vendor's reported one-unit duration range.
type unitSpan struct {
	MinMinutes int `json:"min_minutes"`
	MaxMinutes int `json:"max_minutes"`
}

// bookingService is one row from the booking catalog listing. Its
// duration_minutes is the nominal/maximum figure; unit_span, when present,
// is the real per-unit duration.
type bookingService struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category,omitempty"`
	DurationMinutes   int       `json:"duration_minutes"`
	UnitSpan          *unitSpan `json:"unit_span,omitempty"`
	AddonOnly         bool      `json:"addon_only"`
	MultiplierEnabled bool      `json:"multiplier_enabled"`
	PriceMoney        *Money    `json:"price_money,omitempty"`
}

type bookingServicesResponse struct {
	Services []bookingService `json:"services"`
	Errors   []apiError       `json:"errors,omitempty"`
}

// catalogItem is one row from the retail catalog listing, used only for
// price reconciliation.
type catalogItem struct {
	ID           string `json:"id"`
	PriceEntries []struct {
		ExistingListPriceMoney *Money `json:"existing_list_price_money,omitempty"`
		PriceMoney             *Money `json:"price_money,omitempty"`
	} `json:"price_entries,omitempty"`
	PriceMoney *Money `json:"price_money,omitempty"`
}

type catalogItemsResponse struct {
	Items  []catalogItem `json:"items"`
	Errors []apiError    `json:"errors,omitempty"`
}

// appointmentSegment is one service line item on the wire. Parent linkage
// uses the primary segment's service id.
type appointmentSegment struct {
	ServiceID       string `json:"service_id"`
	TeamMemberID    string `json:"team_member_id"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	PriceMoney      Money  `json:"price_money"`
	ParentServiceID string `json:"parent_service_id,omitempty"`
}

// createBookingRequest is the appointment create payload. The vendor
// validates that end_at equals the latest segment end_at.
type createBookingRequest struct {
	Booking struct {
		LocationID   string               `json:"location_id"`
		TeamMemberID string               `json:"team_member_id"`
		CustomerID   string               `json:"customer_id,omitempty"`
		PetID        string               `json:"pet_id"`
		StartAt      string               `json:"start_at"`
		EndAt        string               `json:"end_at"`
		Segments     []appointmentSegment `json:"appointment_segments"`
		Note         string               `json:"customer_note,omitempty"`
	} `json:"booking"`
}

type createBookingResponse struct {
	Booking struct {
		ID string `json:"id"`
	} `json:"booking"`
	Errors []apiError `json:"errors,omitempty"`
}

// clientRecord is one customer row with their pets, for the roster cache.
type clientRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Pets  []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Breed string `json:"breed,omitempty"`
	} `json:"pets,omitempty"`
}

type clientsResponse struct {
	Clients []clientRecord `json:"clients"`
	Cursor  string         `json:"cursor,omitempty"`
	Errors  []apiError     `json:"errors,omitempty"`
}

type apiError struct {
	Category string `json:"category,omitempty"`
	Code     string `json:"code,omitempty"`
	Detail   string `json:"detail"`
}

type errorsEnvelope struct {
	Errors []apiError `json:"errors,omitempty"`
}
