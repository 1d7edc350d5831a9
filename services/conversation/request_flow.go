package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"turnobot/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (e *Engine) stepName(_ context.Context, conv *models.Conversation, input string) StepOutcome {
	if input == "" {
		return Retry(msgPromptName)
	}
	conv.Data.Nombre = input
	return Advance(StateAwaitEmail)
}

func (e *Engine) stepEmail(_ context.Context, conv *models.Conversation, input string) StepOutcome {
	if !emailRegex.MatchString(input) {
		return Retry(msgInvalidEmail)
	}
	conv.Data.Email = input
	return Advance(StateAwaitService)
}

func (e *Engine) stepService(_ context.Context, conv *models.Conversation, input string) StepOutcome {
	option, ok := serviceMenu[input]
	if !ok {
		return Retry(msgInvalidService)
	}
	conv.Data.Servicio = option.Nombre
	conv.Data.Duracion = option.Duracion
	conv.Data.Precio = option.Precio
	conv.Data.EventTypeID = option.EventTypeID

	ack := fmt.Sprintf("✅ *%s* seleccionado. Duración: %d minutos.", option.Nombre, option.Duracion)
	return Advance(StateAwaitDate, Reply{Body: ack})
}

func (e *Engine) stepDate(ctx context.Context, conv *models.Conversation, input string) StepOutcome {
	if !dateRegex.MatchString(input) {
		return Retry(msgInvalidDateFormat)
	}

	parts := strings.Split(input, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	// time.Date normalizes calendar overflow (31/02 becomes early March);
	// the availability gate below then vets the normalized day.
	fecha := time.Date(year, time.Month(month), day, 0, 0, 0, 0, e.loc)

	now := time.Now().In(e.loc)
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)
	if fecha.Before(hoy) {
		return Retry(msgPastDate)
	}

	if conv.Data.EventTypeID == 0 {
		e.logger.Error("scratch record missing event type at date step", zap.String("phone", conv.Phone))
		return End(Reply{Body: msgStateCorrupted})
	}

	if !e.calendar.HasAvailabilityOn(ctx, conv.Data.EventTypeID, fecha, e.tzName) {
		return Retry(msgNoAvailability)
	}

	conv.Data.Fecha = input
	conv.Data.FechaObj = fecha
	return Advance(StateAwaitTime)
}

func (e *Engine) stepTime(ctx context.Context, conv *models.Conversation, input string) StepOutcome {
	if !timeRegex.MatchString(input) {
		return Retry(msgInvalidTimeFormat)
	}

	parts := strings.Split(input, ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	if conv.Data.FechaObj.IsZero() || conv.Data.Duracion == 0 {
		e.logger.Error("scratch record missing date or duration at time step", zap.String("phone", conv.Phone))
		return End(Reply{Body: msgStateCorrupted})
	}

	if hours < openingHour || hours >= closingHour {
		return Retry(fmt.Sprintf("❌ Nuestro horario de atención es de %d:00 a %d:00. Por favor, elige otro horario.", openingHour, closingHour))
	}

	fecha := conv.Data.FechaObj.In(e.loc)
	start := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), hours, minutes, 0, 0, e.loc)
	end := start.Add(time.Duration(conv.Data.Duracion) * time.Minute)

	if !e.calendar.IsSlotAvailable(ctx, conv.Data.EventTypeID, start, end, e.tzName) {
		return Retry(msgSlotTaken)
	}

	conv.Data.Hora = input
	conv.Data.StartTime = start
	conv.Data.EndTime = end
	return Advance(StateConfirmSummary)
}

// stepSummary captures nothing: it renders the collected fields and advances
// unconditionally.
func (e *Engine) stepSummary(_ context.Context, conv *models.Conversation, _ string) StepOutcome {
	d := conv.Data
	summary := fmt.Sprintf(
		"*Resumen de tu turno:*\n\n"+
			"👤 *Nombre:* %s\n"+
			"📧 *Email:* %s\n"+
			"💈 *Servicio:* %s\n"+
			"💰 *Precio:* $%s\n"+
			"📅 *Fecha:* %s\n"+
			"⏰ *Hora:* %s\n\n"+
			"¿Confirmas el turno con estos datos? (responde SI/NO)",
		d.Nombre, d.Email, d.Servicio, formatMonto(d.Precio), d.Fecha, d.Hora)
	return Advance(StateAwaitConfirmation, Reply{Body: summary})
}

func (e *Engine) stepConfirmation(ctx context.Context, conv *models.Conversation, input string) StepOutcome {
	switch strings.ToLower(input) {
	case "si", "sí":
		return e.negotiateBooking(ctx, conv)
	case "no":
		return End(Reply{Body: msgFarewell})
	default:
		return Retry(msgConfirmRetry)
	}
}

// negotiateBooking re-validates the accumulated scratch record against the
// strict schema, assembles the immutable booking payload and trades it for a
// payment link. Every failure past this point is terminal for the attempt:
// the detail is logged, the user sees only the generic error.
func (e *Engine) negotiateBooking(ctx context.Context, conv *models.Conversation) StepOutcome {
	conv.Data.Telefono = conv.Phone
	data := conv.Data

	if err := e.validate.Struct(data); err != nil {
		e.logger.Error("turno data failed schema validation",
			zap.String("phone", conv.Phone), zap.Error(err))
		return End(Reply{Body: msgGenericError})
	}

	request := &models.BookingRequest{
		EventTypeID: data.EventTypeID,
		Start:       data.StartTime.UTC().Format(time.RFC3339),
		End:         data.EndTime.UTC().Format(time.RFC3339),
		TimeZone:    e.tzName,
		Language:    e.locale,
		Responses: models.BookingResponses{
			Name:  data.Nombre,
			Email: data.Email,
			Phone: conv.Phone,
		},
		Metadata: models.BookingMetadata{
			Service:     data.Servicio,
			Price:       data.Precio,
			WhatsApp:    conv.Phone,
			ReferenceID: uuid.New().String(),
		},
	}

	paymentURL, err := e.negotiator.Negotiate(ctx, request)
	if err != nil {
		e.logger.Error("booking negotiation failed",
			zap.String("phone", conv.Phone), zap.Error(err))
		return End(Reply{Body: msgGenericError})
	}

	conv.Data.PendingBooking = request
	conv.Data.PaymentURL = paymentURL

	if e.expiry != nil {
		if err := e.expiry.ScheduleRelease(ctx, request.Metadata.ReferenceID, conv.Phone, paymentWindow); err != nil {
			e.logger.Error("failed to schedule payment expiry",
				zap.String("referenceId", request.Metadata.ReferenceID), zap.Error(err))
		}
	}

	confirmation := fmt.Sprintf(
		"🔔 *¡Genial!* Tu turno está casi listo. Por favor, completa el pago para confirmar tu reserva.\n\n"+
			"💳 *Monto a pagar:* $%s\n"+
			"📅 *Fecha:* %s\n\n"+
			"Por favor, haz clic en el siguiente enlace para realizar el pago:\n%s\n\n"+
			"*Importante:* Tienes 30 minutos para completar el pago o tu turno será cancelado automáticamente.",
		formatMonto(data.Precio), formatFechaLarga(data.StartTime.In(e.loc)), paymentURL)

	directLink := fmt.Sprintf("💳 *Enlace de pago directo:*\n%s", paymentURL)

	return Park(StateBookingNegotiated,
		Reply{Body: confirmation},
		Reply{Body: directLink})
}
