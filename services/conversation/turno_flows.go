package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"turnobot/models"
	"turnobot/services/turnos"

	"go.uber.org/zap"
)

// stepCancelID consumes the turno id and attempts the cancellation. Either
// way the conversation ends; the user can re-enter via the menu.
func (e *Engine) stepCancelID(ctx context.Context, conv *models.Conversation, input string) StepOutcome {
	if input == "" {
		return Retry(msgPromptCancelID)
	}

	turno, _ := e.turnos.GetByID(input)

	err := e.turnos.Cancel(conv.Phone, input)
	if errors.Is(err, turnos.ErrNotFound) {
		return End(Reply{Body: "No se encontró ningún turno con ese ID. " +
			"Verifica el número e inténtalo de nuevo o escribe *solicitar turno* para agendar uno nuevo."})
	}
	if err != nil {
		e.logger.Error("turno cancellation failed",
			zap.String("phone", conv.Phone), zap.String("id", input), zap.Error(err))
		return End(Reply{Body: msgGenericError})
	}

	// The local record is gone either way; a failed upstream cancellation
	// only leaves a stale slot on the calendar.
	if turno != nil && turno.BookingUID != "" {
		if cerr := e.calendar.CancelBooking(ctx, turno.BookingUID, "cancelado por el cliente"); cerr != nil {
			e.logger.Error("calendar cancellation failed",
				zap.String("bookingUid", turno.BookingUID), zap.Error(cerr))
		}
	}

	return End(Reply{Body: fmt.Sprintf(
		"❌ *Turno cancelado*\nID: %s\n\nSi necesitas un nuevo turno, escribe *solicitar turno*.", input)})
}

// listTurnos renders the caller's confirmed turnos. Stateless: nothing is
// captured afterwards.
func (e *Engine) listTurnos(ctx context.Context, from string) error {
	list := e.turnos.ListByPhone(from)
	if len(list) == 0 {
		return e.send(ctx, from, Reply{Body: msgNoTurnos})
	}

	var b strings.Builder
	b.WriteString("*Tus turnos programados:*\n\n")
	for i, turno := range list {
		fmt.Fprintf(&b, "*Turno #%d*\n", i+1)
		fmt.Fprintf(&b, "🔹 *ID:* %s\n", turno.ID)
		fmt.Fprintf(&b, "✂️ *Servicio:* %s\n", turno.Servicio)
		fmt.Fprintf(&b, "📅 *Fecha:* %s a las %s\n\n", turno.Fecha, turno.Hora)
	}
	b.WriteString("¿Necesitas algo más? Puedes:\n")
	b.WriteString("• *Cancelar un turno*\n")
	b.WriteString("• *Solicitar un nuevo turno*\n")
	b.WriteString("• *Ver esta ayuda*")

	return e.send(ctx, from, Reply{Body: b.String()})
}
