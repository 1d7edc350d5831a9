package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"turnobot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func preferenceServer(t *testing.T, resp models.PreferenceResponse, gotReq *models.PreferenceRequest, gotAuth *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestCreatePaymentLink(t *testing.T) {
	var gotReq models.PreferenceRequest
	var gotAuth string
	srv := preferenceServer(t, models.PreferenceResponse{
		ID:               "pref-123",
		InitPoint:        "https://mpago.la/live",
		SandboxInitPoint: "https://mpago.la/sandbox",
	}, &gotReq, &gotAuth)
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	link, err := issuer.CreatePaymentLink(context.Background(), models.PaymentLinkParams{
		Title:             "Turno - Corte de cabello",
		Description:       "Turno para Ana Gomez el 15/09/2026 14:00",
		CurrencyID:        "ARS",
		UnitPrice:         1500.0,
		ExternalReference: `{"eventTypeId":1}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mpago.la/live", link.URL, "live URL wins over sandbox")
	assert.Equal(t, "pref-123", link.ID)

	assert.Equal(t, "Bearer TEST-TOKEN", gotAuth)
	require.Len(t, gotReq.Items, 1)
	item := gotReq.Items[0]
	assert.Equal(t, "Turno - Corte de cabello", item.Title)
	assert.Equal(t, 1, item.Quantity, "quantity defaults to 1")
	assert.Equal(t, "ARS", item.CurrencyID)
	assert.Equal(t, 1500.0, item.UnitPrice)
	assert.Equal(t, `{"eventTypeId":1}`, gotReq.ExternalReference)
	assert.Equal(t, "approved", gotReq.AutoReturn)
	assert.Equal(t, genericBackURL, gotReq.BackURLs.Success)
	assert.Equal(t, genericBackURL, gotReq.BackURLs.Failure)
}

func TestCreatePaymentLinkSandboxFallback(t *testing.T) {
	srv := preferenceServer(t, models.PreferenceResponse{
		ID:               "pref-456",
		SandboxInitPoint: "https://mpago.la/sandbox",
	}, nil, nil)
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	link, err := issuer.CreatePaymentLink(context.Background(), models.PaymentLinkParams{
		Title: "Turno", UnitPrice: 1000, CurrencyID: "ARS",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mpago.la/sandbox", link.URL)
}

func TestCreatePaymentLinkNoCheckoutURL(t *testing.T) {
	srv := preferenceServer(t, models.PreferenceResponse{ID: "pref-789"}, nil, nil)
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	_, err := issuer.CreatePaymentLink(context.Background(), models.PaymentLinkParams{
		Title: "Turno", UnitPrice: 1000, CurrencyID: "ARS",
	})
	assert.ErrorIs(t, err, ErrNoCheckoutURL)
}

func TestCreatePaymentLinkRejectsBadAmountWithoutCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	for _, price := range []any{nil, 0, -50, "free", map[string]int{}} {
		_, err := issuer.CreatePaymentLink(context.Background(), models.PaymentLinkParams{
			Title: "Turno", UnitPrice: price, CurrencyID: "ARS",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "price %v", price)
	}
	assert.False(t, called, "gateway must not be hit with an invalid amount")
}

func TestCreatePaymentLinkGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid access token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "BAD-TOKEN", zap.NewNop())
	_, err := issuer.CreatePaymentLink(context.Background(), models.PaymentLinkParams{
		Title: "Turno", UnitPrice: 1500, CurrencyID: "ARS",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestVerifyPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/12345", r.URL.Path)
		require.Equal(t, "Bearer TEST-TOKEN", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.PaymentVerification{
			Status:            models.PaymentStatusApproved,
			StatusDetail:      "accredited",
			ExternalReference: `{"eventTypeId":1}`,
		})
	}))
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	v, err := issuer.VerifyPayment(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, v.Status)
	assert.Equal(t, `{"eventTypeId":1}`, v.ExternalReference)
}

func TestVerifyPaymentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Payment not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	issuer := NewMercadoPagoIssuer(srv.URL, "TEST-TOKEN", zap.NewNop())
	_, err := issuer.VerifyPayment(context.Background(), "99999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"float64", 1500.5, 1500.5, true},
		{"float32", float32(200), 200, true},
		{"int", 1500, 1500, true},
		{"int64", int64(2000), 2000, true},
		{"json number", json.Number("1750.25"), 1750.25, true},
		{"numeric string", "1500", 1500, true},
		{"decimal string", "99.90", 99.9, true},
		{"zero", 0.0, 0, false},
		{"negative", -10, 0, false},
		{"word string", "mil quinientos", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CoerceAmount(tc.in)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
