package models

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the coordinate pair is unset. The zero value doubles
// as the "no location resolved" sentinel, matching how unresolved lookups are
// persisted.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
