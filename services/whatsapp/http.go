package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPProvider sends messages through a WhatsApp Cloud style messages
// endpoint.
type HTTPProvider struct {
	apiURL      string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewHTTPProvider(apiURL, accessToken string, logger *zap.Logger) *HTTPProvider {
	return &HTTPProvider{
		apiURL:      apiURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

type outboundText struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

func (p *HTTPProvider) SendText(ctx context.Context, to, body string, opts ...SendOption) error {
	o := applyOptions(opts)
	if o.delay > 0 {
		select {
		case <-time.After(o.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	msg := outboundText{MessagingProduct: "whatsapp", To: to, Type: "text"}
	msg.Text.Body = body

	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding outbound message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/messages", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending message to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("messaging provider returned %d: %s", resp.StatusCode, respBody)
	}

	p.logger.Debug("message sent", zap.String("to", to), zap.Int("bytes", len(body)))
	return nil
}
