package models

// Budget holds a vendor's cost preferences.
type Budget struct {
	MaxVendorFee float64 `json:"maxVendorFee"`
}

// SizeRange is a vendor's preferred event headcount band.
type SizeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Schedule holds a vendor's availability preferences.
type Schedule struct {
	PreferredDays []string `json:"preferredDays"`
}

// Vendor is a vendor profile as persisted by the marketplace. Only the
// fields the compatibility scorer consumes are modeled; everything else
// (contact info, social links, media) lives outside this engine.
type Vendor struct {
	ID                 string      `json:"id"`
	BusinessName       string      `json:"businessName"`
	Categories         []string    `json:"categories"`
	Coordinates        Coordinates `json:"coordinates"`
	EventPreference    []string    `json:"eventPreference"`
	Budget             Budget      `json:"budget"`
	Demographic        []string    `json:"demographic"`
	SelectedPastPopups []string    `json:"selectedPastPopups"`
	PreferredEventSize SizeRange   `json:"preferredEventSize"`
	Schedule           Schedule    `json:"schedule"`
	Description        string      `json:"description"`
}
