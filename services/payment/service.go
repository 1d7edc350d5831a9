package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"turnobot/models"

	"go.uber.org/zap"
)

// Redirects always point at the gateway's own generic pages; the bot has no
// web frontend of its own.
const genericBackURL = "https://www.mercadopago.com.ar"

var (
	// ErrInvalidAmount is returned when the unit price cannot be coerced to
	// a positive number.
	ErrInvalidAmount = errors.New("unit price must be a positive number")
	// ErrNoCheckoutURL is returned when the gateway answers without a usable
	// checkout URL.
	ErrNoCheckoutURL = errors.New("payment service returned no checkout URL")
)

// Issuer mints checkout links and verifies payment status.
type Issuer interface {
	CreatePaymentLink(ctx context.Context, params models.PaymentLinkParams) (*models.PaymentLink, error)
	VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentVerification, error)
}

// MercadoPagoIssuer implements Issuer against a MercadoPago-compatible API.
type MercadoPagoIssuer struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewMercadoPagoIssuer(baseURL, accessToken string, logger *zap.Logger) *MercadoPagoIssuer {
	return &MercadoPagoIssuer{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// CreatePaymentLink builds a single-item checkout preference and returns the
// redirectable checkout URL, preferring the live URL over the sandbox one.
func (s *MercadoPagoIssuer) CreatePaymentLink(ctx context.Context, params models.PaymentLinkParams) (*models.PaymentLink, error) {
	amount, err := CoerceAmount(params.UnitPrice)
	if err != nil {
		return nil, err
	}

	quantity := params.Quantity
	if quantity == 0 {
		quantity = 1
	}

	prefReq := models.PreferenceRequest{
		Items: []models.PaymentItem{{
			Title:       params.Title,
			Description: params.Description,
			Quantity:    quantity,
			CurrencyID:  params.CurrencyID,
			UnitPrice:   amount,
		}},
		ExternalReference: params.ExternalReference,
		NotificationURL:   "",
		BackURLs: models.BackURLs{
			Success: genericBackURL,
			Pending: genericBackURL,
			Failure: genericBackURL,
		},
		AutoReturn: "approved",
	}

	var prefResp models.PreferenceResponse
	if err := s.post(ctx, "/checkout/preferences", prefReq, &prefResp); err != nil {
		return nil, fmt.Errorf("creating checkout preference: %w", err)
	}

	url := prefResp.InitPoint
	if url == "" {
		url = prefResp.SandboxInitPoint
	}
	if url == "" {
		return nil, ErrNoCheckoutURL
	}

	s.logger.Info("payment link created",
		zap.String("preferenceId", prefResp.ID),
		zap.Float64("amount", amount))
	return &models.PaymentLink{URL: url, ID: prefResp.ID}, nil
}

// VerifyPayment looks up a payment by id. A webhook handler calls this to
// decide whether to finalize the pending booking carried in the external
// reference.
func (s *MercadoPagoIssuer) VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentVerification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("building payment lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("payment service returned %d: %s", resp.StatusCode, body)
	}

	var verification models.PaymentVerification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, fmt.Errorf("decoding payment lookup response: %w", err)
	}
	return &verification, nil
}

func (s *MercadoPagoIssuer) post(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("payment service returned %d: %s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
