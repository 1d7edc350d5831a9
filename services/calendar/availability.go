package calendar

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"turnobot/models"

	"go.uber.org/zap"
)

// fetchSlots queries the day-keyed slot map for a window. The window bounds
// are converted to UTC instants before hitting the API.
func (c *Client) fetchSlots(ctx context.Context, eventTypeID int, from, to time.Time, timeZone string) (map[string][]models.Slot, error) {
	query := url.Values{}
	query.Set("eventTypeId", strconv.Itoa(eventTypeID))
	query.Set("startTime", from.UTC().Format(time.RFC3339))
	query.Set("endTime", to.UTC().Format(time.RFC3339))
	query.Set("timeZone", timeZone)

	var out models.SlotsResponse
	if err := c.get(ctx, "/slots", query, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// HasAvailabilityOn reports whether the given local calendar day has at least
// one open slot for the event type. Failures are logged and reported as
// unavailable.
func (c *Client) HasAvailabilityOn(ctx context.Context, eventTypeID int, day time.Time, timeZone string) bool {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		c.logger.Error("invalid timezone for availability check",
			zap.String("timeZone", timeZone), zap.Error(err))
		return false
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	slots, err := c.fetchSlots(ctx, eventTypeID, dayStart, dayEnd, timeZone)
	if err != nil {
		c.logger.Error("day availability lookup failed",
			zap.Int("eventTypeId", eventTypeID),
			zap.String("day", dayStart.Format("2006-01-02")),
			zap.Error(err))
		return false
	}

	dayKey := dayStart.Format("2006-01-02")
	return len(slots[dayKey]) > 0
}

// IsSlotAvailable reports whether the exact requested start instant is an
// open slot. Equality is checked at millisecond precision after parsing;
// inexact matches and lookup failures both count as unavailable.
func (c *Client) IsSlotAvailable(ctx context.Context, eventTypeID int, start, end time.Time, timeZone string) bool {
	slots, err := c.fetchSlots(ctx, eventTypeID, start, end, timeZone)
	if err != nil {
		c.logger.Error("slot availability lookup failed",
			zap.Int("eventTypeId", eventTypeID),
			zap.Time("start", start),
			zap.Error(err))
		return false
	}

	want := start.Truncate(time.Millisecond)
	for _, daySlots := range slots {
		for _, slot := range daySlots {
			t, err := time.Parse(time.RFC3339, slot.Time)
			if err != nil {
				c.logger.Warn("unparseable slot timestamp", zap.String("time", slot.Time))
				continue
			}
			if t.Truncate(time.Millisecond).Equal(want) {
				return true
			}
		}
	}
	return false
}
