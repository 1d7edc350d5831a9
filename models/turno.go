package models

import "time"

// ServiceOption is one entry of the closed service menu. The menu is
// immutable configuration shared by every conversation.
type ServiceOption struct {
	Nombre      string  `json:"nombre"`
	Duracion    int     `json:"duracion"` // minutes
	Precio      float64 `json:"precio"`
	EventTypeID int     `json:"eventTypeId"`
}

// TurnoData is the per-conversation scratch record. Each field is written by
// exactly one step of the flow and read by later steps; a later step finding
// a required field unset must treat it as state corruption, never default it.
// The validate tags form the strict schema applied before booking negotiation.
type TurnoData struct {
	Nombre      string    `json:"nombre" validate:"required,min=2"`
	Email       string    `json:"email" validate:"required,email"`
	Servicio    string    `json:"servicio" validate:"required"`
	Duracion    int       `json:"duracion"`
	Precio      float64   `json:"precio" validate:"required,gt=0"`
	EventTypeID int       `json:"eventTypeId"`
	Fecha       string    `json:"fecha"`    // display form, DD/MM/YYYY
	FechaObj    time.Time `json:"fechaObj"` // selected day at local midnight
	Hora        string    `json:"hora"`     // display form, HH:MM
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	Telefono    string    `json:"telefono" validate:"required,min=8"`

	// Written on successful negotiation, kept only for reconciliation.
	PendingBooking *BookingRequest `json:"pendingBooking,omitempty"`
	PaymentURL     string          `json:"paymentUrl,omitempty"`
}

// Conversation wraps the scratch record with its current flow state. It is
// exclusively owned by one sender; there is no cross-conversation sharing.
type Conversation struct {
	Phone     string    `json:"phone"`
	State     string    `json:"state"`
	Data      TurnoData `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Turno is a confirmed appointment as kept by the in-memory listing store.
// BookingUID is the scheduling service's own id, needed to cancel there.
type Turno struct {
	ID         string `json:"id"`
	BookingUID string `json:"bookingUid,omitempty"`
	Nombre     string `json:"nombre"`
	Servicio   string `json:"servicio"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	Telefono   string `json:"telefono"`
}
