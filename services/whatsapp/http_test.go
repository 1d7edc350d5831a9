package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSendText(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "WA-TOKEN", zap.NewNop())
	require.NoError(t, p.SendText(context.Background(), "5491122334455", "¿Cuál es tu nombre completo?"))

	assert.Equal(t, "Bearer WA-TOKEN", gotAuth)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "5491122334455", gotBody["to"])
	assert.Equal(t, "text", gotBody["type"])
	text := gotBody["text"].(map[string]any)
	assert.Equal(t, "¿Cuál es tu nombre completo?", text["body"])
}

func TestSendTextProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "BAD", zap.NewNop())
	err := p.SendText(context.Background(), "5491122334455", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendTextDelayRespectsContext(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewHTTPProvider(srv.URL, "WA-TOKEN", zap.NewNop())
	err := p.SendText(ctx, "5491122334455", "hola", WithDelay(time.Minute))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "cancelled send must not reach the provider")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.SendText(context.Background(), "111", "uno"))
	require.NoError(t, r.SendText(context.Background(), "222", "dos"))

	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SentMessage{To: "111", Body: "uno"}, msgs[0])

	r.FailNext = context.DeadlineExceeded
	assert.Error(t, r.SendText(context.Background(), "333", "tres"))
	require.NoError(t, r.SendText(context.Background(), "333", "tres"), "failure injection resets after one send")

	r.Reset()
	assert.Empty(t, r.Messages())
}
