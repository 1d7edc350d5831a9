package whatsapp

import (
	"context"
	"sync"
)

// SentMessage is one message captured by the Recorder.
type SentMessage struct {
	To   string
	Body string
}

// Recorder is a Messenger that captures outbound messages in memory. Tests
// across packages use it in place of the HTTP provider.
type Recorder struct {
	mu       sync.Mutex
	messages []SentMessage

	// FailNext makes the next send return an error, then resets.
	FailNext error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SendText(_ context.Context, to, body string, _ ...SendOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailNext; err != nil {
		r.FailNext = nil
		return err
	}
	r.messages = append(r.messages, SentMessage{To: to, Body: body})
	return nil
}

// Messages returns a copy of everything sent so far.
func (r *Recorder) Messages() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SentMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset clears the captured messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
