package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"turnobot/models"
	"turnobot/services/calendar"
	"turnobot/services/payment"
	"turnobot/services/turnos"
	"turnobot/services/whatsapp"
	"turnobot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentWebhookHandler finalizes a pending booking once its payment is
// approved: it verifies the payment, reconstructs the booking from the
// external reference, creates the calendar booking and tells the user.
type PaymentWebhookHandler struct {
	Payments  payment.Issuer
	Calendar  calendar.Service
	Turnos    turnos.Repository
	Messenger whatsapp.Messenger
	Logger    *zap.Logger
}

func NewPaymentWebhookHandler(
	payments payment.Issuer,
	cal calendar.Service,
	turnosRepo turnos.Repository,
	messenger whatsapp.Messenger,
	logger *zap.Logger,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		Payments:  payments,
		Calendar:  cal,
		Turnos:    turnosRepo,
		Messenger: messenger,
		Logger:    logger,
	}
}

// formatStart renders a UTC booking start as local display date and time.
func formatStart(start, timeZone string) (fecha, hora string) {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return start, ""
	}
	if loc, err := time.LoadLocation(timeZone); err == nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006"), t.Format("15:04")
}

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *PaymentWebhookHandler) Receive(c *gin.Context) {
	var notif paymentNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid notification", err.Error())
		return
	}
	if notif.Type != "payment" || notif.Data.ID == "" {
		// Not a payment event; acknowledge so the gateway stops retrying.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	verification, err := h.Payments.VerifyPayment(c.Request.Context(), notif.Data.ID)
	if err != nil {
		h.Logger.Error("payment verification failed",
			zap.String("paymentId", notif.Data.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	if verification.Status != models.PaymentStatusApproved {
		h.Logger.Info("payment not approved, nothing to finalize",
			zap.String("paymentId", notif.Data.ID),
			zap.String("status", string(verification.Status)),
			zap.String("detail", verification.StatusDetail))
		c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
		return
	}

	var request models.BookingRequest
	if err := json.Unmarshal([]byte(verification.ExternalReference), &request); err != nil {
		h.Logger.Error("external reference does not decode to a booking",
			zap.String("paymentId", notif.Data.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unusable external reference"})
		return
	}

	booked, err := h.Calendar.ConfirmBooking(c.Request.Context(), &request)
	if err != nil {
		h.Logger.Error("booking confirmation failed",
			zap.String("paymentId", notif.Data.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking confirmation failed"})
		return
	}

	id := request.Metadata.ReferenceID
	if id == "" {
		id = booked.UID
	}
	fecha, hora := formatStart(request.Start, request.TimeZone)
	h.Turnos.Add(models.Turno{
		ID:         id,
		BookingUID: booked.UID,
		Nombre:     request.Responses.Name,
		Servicio:   request.Metadata.Service,
		Fecha:      fecha,
		Hora:       hora,
		Telefono:   request.Metadata.WhatsApp,
	})

	if request.Metadata.WhatsApp != "" {
		text := fmt.Sprintf("✅ *¡Pago recibido!* Tu turno de *%s* quedó confirmado.\n🔹 *ID:* %s",
			request.Metadata.Service, id)
		if err := h.Messenger.SendText(c.Request.Context(), request.Metadata.WhatsApp, text); err != nil {
			h.Logger.Error("failed to notify booking confirmation",
				zap.String("phone", request.Metadata.WhatsApp), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "bookingUid": booked.UID})
}
