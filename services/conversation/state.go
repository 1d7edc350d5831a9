package conversation

import "time"

// State identifies the pending step of a conversation.
type State string

// Turno request flow states. The flow is linear; the only cross-edges are
// the per-step retry self-loops and the terminal confirm/cancel branch.
const (
	StateAwaitName         State = "AWAIT_NAME"
	StateAwaitEmail        State = "AWAIT_EMAIL"
	StateAwaitService      State = "AWAIT_SERVICE"
	StateAwaitDate         State = "AWAIT_DATE"
	StateAwaitTime         State = "AWAIT_TIME"
	StateConfirmSummary    State = "CONFIRM_SUMMARY"
	StateAwaitConfirmation State = "AWAIT_CONFIRMATION"
	StateBookingNegotiated State = "BOOKING_NEGOTIATED"
	StateCancelled         State = "CANCELLED"

	// Cancel flow.
	StateCancelAwaitID State = "CANCEL_AWAIT_ID"
)

// Reply is one outbound message produced by a step.
type Reply struct {
	Body  string
	Delay time.Duration
}

type outcomeKind int

const (
	outcomeAdvance outcomeKind = iota
	outcomeRetry
	outcomeEnd
	outcomePark
)

// StepOutcome is the typed result of running one step against one captured
// message: advance to the next state, retry the same step with an
// explanatory message, end the conversation, or park it in a terminal state
// kept around for reconciliation.
type StepOutcome struct {
	kind    outcomeKind
	next    State
	replies []Reply
}

// Advance moves the conversation to next, delivering replies first.
func Advance(next State, replies ...Reply) StepOutcome {
	return StepOutcome{kind: outcomeAdvance, next: next, replies: replies}
}

// Retry keeps the conversation in its current state and re-prompts.
func Retry(message string) StepOutcome {
	return StepOutcome{kind: outcomeRetry, replies: []Reply{{Body: message}}}
}

// End terminates the conversation; its scratch record is discarded.
func End(replies ...Reply) StepOutcome {
	return StepOutcome{kind: outcomeEnd, replies: replies}
}

// Park moves the conversation to a terminal state that captures no further
// messages but keeps the scratch record until its TTL runs out.
func Park(terminal State, replies ...Reply) StepOutcome {
	return StepOutcome{kind: outcomePark, next: terminal, replies: replies}
}
