package whatsapp

import (
	"context"
	"time"
)

// SendOption tweaks a single outbound message.
type SendOption func(*sendOptions)

type sendOptions struct {
	delay time.Duration
}

// WithDelay pauses before the message is sent, mimicking typing.
func WithDelay(d time.Duration) SendOption {
	return func(o *sendOptions) {
		o.delay = d
	}
}

func applyOptions(opts []SendOption) sendOptions {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Messenger delivers text messages to a chat contact. Implementations must
// not panic on delivery failure; the conversation engine logs and moves on.
type Messenger interface {
	SendText(ctx context.Context, to, body string, opts ...SendOption) error
}
