package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"turnobot/models"
	"turnobot/services/booking"
	"turnobot/services/calendar"
	"turnobot/services/turnos"
	"turnobot/services/whatsapp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ExpiryScheduler enqueues the release of a negotiated turno whose payment
// never arrives.
type ExpiryScheduler interface {
	ScheduleRelease(ctx context.Context, referenceID, phone string, delay time.Duration) error
}

// paymentWindow is how long the user has to complete the payment before the
// held slot is released.
const paymentWindow = 30 * time.Minute

type stepFunc func(ctx context.Context, conv *models.Conversation, input string) StepOutcome

// Engine drives all conversations. One inbound message advances at most one
// pending step; the step's external calls complete before the next prompt
// goes out. Conversations of distinct senders are independent.
type Engine struct {
	store      Store
	messenger  whatsapp.Messenger
	calendar   calendar.Service
	negotiator booking.Negotiator
	turnos     turnos.Repository
	expiry     ExpiryScheduler
	validate   *validator.Validate
	logger     *zap.Logger

	tzName string
	loc    *time.Location
	locale string

	steps   map[State]stepFunc
	prompts map[State][]Reply
}

func NewEngine(
	store Store,
	messenger whatsapp.Messenger,
	cal calendar.Service,
	negotiator booking.Negotiator,
	turnosRepo turnos.Repository,
	expiry ExpiryScheduler,
	timeZone, locale string,
	logger *zap.Logger,
) (*Engine, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timeZone, err)
	}

	e := &Engine{
		store:      store,
		messenger:  messenger,
		calendar:   cal,
		negotiator: negotiator,
		turnos:     turnosRepo,
		expiry:     expiry,
		validate:   validator.New(),
		logger:     logger,
		tzName:     timeZone,
		loc:        loc,
		locale:     locale,
	}

	e.steps = map[State]stepFunc{
		StateAwaitName:         e.stepName,
		StateAwaitEmail:        e.stepEmail,
		StateAwaitService:      e.stepService,
		StateAwaitDate:         e.stepDate,
		StateAwaitTime:         e.stepTime,
		StateConfirmSummary:    e.stepSummary,
		StateAwaitConfirmation: e.stepConfirmation,
		StateCancelAwaitID:     e.stepCancelID,
	}
	e.prompts = map[State][]Reply{
		StateAwaitName:         {{Body: msgPromptName}},
		StateAwaitEmail:        {{Body: msgPromptEmail}},
		StateAwaitService:      {{Body: msgPromptService}},
		StateAwaitDate:         {{Body: msgPromptDate}},
		StateAwaitTime:         {{Body: msgPromptTime}},
		StateConfirmSummary:    {{Body: msgPromptSummary}},
		StateAwaitConfirmation: {{Body: msgPromptConfirmation}},
		StateCancelAwaitID:     {{Body: msgPromptCancelID}},
	}
	return e, nil
}

// HandleMessage processes one inbound text message from a sender.
func (e *Engine) HandleMessage(ctx context.Context, from, body string) error {
	conv, err := e.store.Get(ctx, from)
	if err != nil {
		e.logger.Error("conversation lookup failed", zap.String("phone", from), zap.Error(err))
		return e.send(ctx, from, Reply{Body: msgGenericError})
	}

	if conv != nil {
		step, ok := e.steps[State(conv.State)]
		if !ok {
			// Terminal or unknown state: the old flow is over. Drop it and
			// treat the message as a fresh entry, so a repeated "si" after
			// success can never re-run the confirmation.
			if err := e.store.Delete(ctx, from); err != nil {
				e.logger.Warn("failed to drop finished conversation", zap.String("phone", from), zap.Error(err))
			}
			return e.routeEntry(ctx, from, body)
		}
		out := step(ctx, conv, strings.TrimSpace(body))
		return e.apply(ctx, conv, out)
	}

	return e.routeEntry(ctx, from, body)
}

// routeEntry dispatches the first message of a contact with no active
// conversation: the menu choice or a recognized trigger phrase.
func (e *Engine) routeEntry(ctx context.Context, from, body string) error {
	text := strings.ToLower(strings.TrimSpace(body))

	switch {
	case text == "1" || strings.Contains(text, "solicitar") ||
		strings.Contains(text, "agendar") || strings.Contains(text, "nuevo turno"):
		return e.startRequestFlow(ctx, from)

	case text == "2" || strings.Contains(text, "cancelar"):
		return e.startCancelFlow(ctx, from)

	case text == "3" || strings.Contains(text, "ver"):
		return e.listTurnos(ctx, from)

	default:
		if err := e.send(ctx, from, Reply{Body: msgWelcome}); err != nil {
			return err
		}
		return e.send(ctx, from, Reply{Body: msgMenu})
	}
}

func (e *Engine) startRequestFlow(ctx context.Context, from string) error {
	conv := &models.Conversation{Phone: from, State: string(StateAwaitName)}
	if err := e.store.Save(ctx, conv); err != nil {
		e.logger.Error("failed to create conversation", zap.String("phone", from), zap.Error(err))
		return e.send(ctx, from, Reply{Body: msgGenericError})
	}
	if err := e.send(ctx, from, Reply{Body: msgFlowStart, Delay: time.Second}); err != nil {
		return err
	}
	return e.sendPrompt(ctx, from, StateAwaitName)
}

func (e *Engine) startCancelFlow(ctx context.Context, from string) error {
	conv := &models.Conversation{Phone: from, State: string(StateCancelAwaitID)}
	if err := e.store.Save(ctx, conv); err != nil {
		e.logger.Error("failed to create conversation", zap.String("phone", from), zap.Error(err))
		return e.send(ctx, from, Reply{Body: msgGenericError})
	}
	return e.sendPrompt(ctx, from, StateCancelAwaitID)
}

// apply carries out a step outcome: delivers its replies, persists or
// discards the conversation, and chases non-capturing states.
func (e *Engine) apply(ctx context.Context, conv *models.Conversation, out StepOutcome) error {
	switch out.kind {
	case outcomeRetry:
		// Keep the state, refresh the record, re-prompt with the reason.
		if err := e.store.Save(ctx, conv); err != nil {
			e.logger.Error("failed to save conversation", zap.String("phone", conv.Phone), zap.Error(err))
		}
		return e.sendAll(ctx, conv.Phone, out.replies)

	case outcomeAdvance:
		conv.State = string(out.next)
		if err := e.store.Save(ctx, conv); err != nil {
			e.logger.Error("failed to save conversation", zap.String("phone", conv.Phone), zap.Error(err))
			if derr := e.store.Delete(ctx, conv.Phone); derr != nil {
				e.logger.Warn("failed to drop conversation", zap.String("phone", conv.Phone), zap.Error(derr))
			}
			return e.send(ctx, conv.Phone, Reply{Body: msgGenericError})
		}
		if err := e.sendAll(ctx, conv.Phone, out.replies); err != nil {
			return err
		}
		if err := e.sendPrompt(ctx, conv.Phone, out.next); err != nil {
			return err
		}
		// CONFIRM_SUMMARY captures nothing: render and move on at once.
		if out.next == StateConfirmSummary {
			return e.apply(ctx, conv, e.stepSummary(ctx, conv, ""))
		}
		return nil

	case outcomePark:
		conv.State = string(out.next)
		if err := e.store.Save(ctx, conv); err != nil {
			e.logger.Error("failed to park conversation", zap.String("phone", conv.Phone), zap.Error(err))
		}
		return e.sendAll(ctx, conv.Phone, out.replies)

	case outcomeEnd:
		if err := e.store.Delete(ctx, conv.Phone); err != nil {
			e.logger.Warn("failed to delete conversation", zap.String("phone", conv.Phone), zap.Error(err))
		}
		return e.sendAll(ctx, conv.Phone, out.replies)
	}
	return nil
}

func (e *Engine) sendPrompt(ctx context.Context, to string, state State) error {
	return e.sendAll(ctx, to, e.prompts[state])
}

func (e *Engine) sendAll(ctx context.Context, to string, replies []Reply) error {
	for _, r := range replies {
		if err := e.send(ctx, to, r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) send(ctx context.Context, to string, r Reply) error {
	var opts []whatsapp.SendOption
	if r.Delay > 0 {
		opts = append(opts, whatsapp.WithDelay(r.Delay))
	}
	if err := e.messenger.SendText(ctx, to, r.Body, opts...); err != nil {
		e.logger.Error("outbound message failed", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}
