package models

// BookingResponses carries the attendee answers required by the scheduling
// service.
type BookingResponses struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingMetadata travels opaquely with the booking and comes back on the
// payment confirmation. ReferenceID correlates the payment, the pending
// booking and the expiry task.
type BookingMetadata struct {
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	WhatsApp    string  `json:"whatsapp"`
	ReferenceID string  `json:"referenceId,omitempty"`
}

// BookingRequest is the immutable booking payload assembled at confirmation
// time. It is serialized whole into the payment's external reference so a
// later payment confirmation can reconstruct the booking without a database.
type BookingRequest struct {
	EventTypeID int              `json:"eventTypeId"`
	Start       string           `json:"start"` // ISO-8601, UTC
	End         string           `json:"end"`   // ISO-8601, UTC
	TimeZone    string           `json:"timeZone"`
	Language    string           `json:"language"`
	Responses   BookingResponses `json:"responses"`
	Metadata    BookingMetadata  `json:"metadata"`
}

// ConfirmedBooking is the scheduling service's record of a created booking.
type ConfirmedBooking struct {
	ID          int    `json:"id"`
	UID         string `json:"uid"`
	EventTypeID int    `json:"eventTypeId"`
	Title       string `json:"title"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
}

// EventType describes a bookable service category on the scheduling service.
type EventType struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Length int    `json:"length"`
	Hidden bool   `json:"hidden,omitempty"`
}
