package models

import "time"

// Location is an event's city/state pair, resolved to coordinates by the
// geocode package.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Event is an event listing. StartDate/EndDate may be nil when the listing
// carried only a free-text date string; RawDate preserves that string so the
// range can be derived on demand by the date parser.
type Event struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         []string   `json:"type"`
	VendorFee    float64    `json:"vendorFee"`
	Demographics []string   `json:"demographics"`
	Categories   []string   `json:"categories"`
	Location     Location   `json:"location"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	RawDate      string     `json:"rawDate,omitempty"`
	Headcount    int        `json:"headcount"`
	Description  string     `json:"description"`
}

// HasDateRange reports whether both ends of the event's date range are
// resolved.
func (e *Event) HasDateRange() bool {
	return e.StartDate != nil && e.EndDate != nil
}
