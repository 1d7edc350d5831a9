package models

// Slot is one open appointment start within a day, as returned by the
// scheduling service.
type Slot struct {
	Time string `json:"time"`
}

// SlotsResponse is the day-keyed slot map from the availability endpoint.
// Keys are local dates in YYYY-MM-DD form; a day with no entry, or with an
// empty slot list, is unavailable.
type SlotsResponse struct {
	Slots map[string][]Slot `json:"slots"`
}
