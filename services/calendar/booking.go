package calendar

import (
	"context"
	"fmt"

	"turnobot/models"

	"go.uber.org/zap"
)

// ConfirmBooking creates the calendar booking. It is called only after a
// successful payment; during the conversation the booking stays pending.
func (c *Client) ConfirmBooking(ctx context.Context, req *models.BookingRequest) (*models.ConfirmedBooking, error) {
	var out struct {
		Booking models.ConfirmedBooking `json:"booking"`
	}
	if err := c.post(ctx, "/bookings", req, &out); err != nil {
		return nil, fmt.Errorf("confirming booking: %w", err)
	}

	c.logger.Info("booking confirmed",
		zap.String("uid", out.Booking.UID),
		zap.Int("eventTypeId", req.EventTypeID),
		zap.String("start", req.Start))
	return &out.Booking, nil
}

// CancelBooking cancels a previously confirmed booking.
func (c *Client) CancelBooking(ctx context.Context, bookingUID, reason string) error {
	payload := map[string]string{"reason": reason}
	if err := c.post(ctx, "/bookings/"+bookingUID+"/cancel", payload, nil); err != nil {
		return fmt.Errorf("cancelling booking %s: %w", bookingUID, err)
	}
	return nil
}

// GetEventTypes lists the bookable service categories.
func (c *Client) GetEventTypes(ctx context.Context) ([]models.EventType, error) {
	var out struct {
		EventTypes []models.EventType `json:"event_types"`
	}
	if err := c.get(ctx, "/event-types", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching event types: %w", err)
	}
	return out.EventTypes, nil
}
