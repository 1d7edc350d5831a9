package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"turnobot/models"
	"turnobot/services/payment"

	"go.uber.org/zap"
)

var (
	// ErrMissingPrice is returned when the booking metadata carries no
	// positive price. Defaulting to zero would mint a free checkout link,
	// so it is rejected outright.
	ErrMissingPrice = errors.New("booking metadata carries no positive price")
	// ErrNoPaymentURL is returned when the issuer yields no usable link.
	ErrNoPaymentURL = errors.New("no payment link could be generated")
)

// Negotiator turns a validated booking payload into a payable checkout link.
// The calendar booking itself is deliberately not created here; it is
// deferred until the payment is confirmed.
type Negotiator interface {
	Negotiate(ctx context.Context, req *models.BookingRequest) (paymentURL string, err error)
}

// DefaultNegotiator implements Negotiator on top of a payment link issuer.
type DefaultNegotiator struct {
	Issuer   payment.Issuer
	Currency string
	Logger   *zap.Logger
}

func NewNegotiator(issuer payment.Issuer, currency string, logger *zap.Logger) *DefaultNegotiator {
	return &DefaultNegotiator{Issuer: issuer, Currency: currency, Logger: logger}
}

// Negotiate prices the booking from its metadata, serializes the whole
// payload into the payment's external reference, and requests the link. The
// external reference is the only storage the pending booking gets: the
// eventual payment confirmation reconstructs it from there.
func (n *DefaultNegotiator) Negotiate(ctx context.Context, req *models.BookingRequest) (string, error) {
	if req.Metadata.Price <= 0 {
		return "", ErrMissingPrice
	}

	ref, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("serializing booking for external reference: %w", err)
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return "", fmt.Errorf("invalid booking start %q: %w", req.Start, err)
	}

	service := req.Metadata.Service
	if service == "" {
		service = "Servicio"
	}

	link, err := n.Issuer.CreatePaymentLink(ctx, models.PaymentLinkParams{
		Title:             fmt.Sprintf("Turno - %s", service),
		Description:       fmt.Sprintf("Turno para %s el %s", req.Responses.Name, start.Format("02/01/2006 15:04")),
		Quantity:          1,
		CurrencyID:        n.Currency,
		UnitPrice:         req.Metadata.Price,
		ExternalReference: string(ref),
	})
	if err != nil {
		return "", fmt.Errorf("requesting payment link: %w", err)
	}
	if link == nil || link.URL == "" {
		return "", ErrNoPaymentURL
	}

	n.Logger.Info("booking negotiated",
		zap.String("referenceId", req.Metadata.ReferenceID),
		zap.String("service", req.Metadata.Service),
		zap.Float64("price", req.Metadata.Price),
		zap.String("preferenceId", link.ID))
	return link.URL, nil
}
