// Package submit drives a spending submission through its lifecycle:
// Idle, Pending, then Success or Failure.
package submit

import "github.com/theirongolddev/greencarbon/internal/model"

// Phase is the lifecycle position of a submission.
type Phase int

const (
	// Idle is the initial state: no result, no error.
	Idle Phase = iota
	// Pending means a request is in flight.
	Pending
	// Succeeded holds the result list of the last request.
	Succeeded
	// Failed holds the error message of the last attempt.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "success"
	case Failed:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the current submission state. It is replaced wholesale on every
// transition; results and message are never set together.
type Outcome struct {
	phase   Phase
	results []model.MonthResult
	message string
}

// Phase returns the lifecycle phase.
func (o Outcome) Phase() Phase { return o.phase }

// Loading reports whether a request is in flight.
func (o Outcome) Loading() bool { return o.phase == Pending }

// Results returns the result list on success, nil otherwise.
// A successful response with zero months yields an empty, non-nil slice.
func (o Outcome) Results() []model.MonthResult {
	if o.phase != Succeeded {
		return nil
	}
	return o.results
}

// Message returns the error message on failure, "" otherwise.
func (o Outcome) Message() string {
	if o.phase != Failed {
		return ""
	}
	return o.message
}

// Event drives a transition of Outcome.
type Event interface {
	event()
}

// Started is emitted when a request is about to be sent.
type Started struct{}

// Rejected is emitted when the input fails the submit gate; no request is sent.
type Rejected struct{ Message string }

// Resolved carries the decoded results of a successful request.
type Resolved struct{ Results []model.MonthResult }

// Faulted carries the display message of a failed request.
type Faulted struct{ Message string }

func (Started) event()  {}
func (Rejected) event() {}
func (Resolved) event() {}
func (Faulted) event()  {}

// Next is the transition function. It never mutates o.
//
// Started enters Pending and drops any previous result or error, unless a request is
// already pending. Rejected fails immediately from any non-pending state. Resolved and
// Faulted only complete a pending request; they are ignored otherwise.
func Next(o Outcome, ev Event) Outcome {
	switch e := ev.(type) {
	case Started:
		if o.Loading() {
			return o
		}
		return Outcome{phase: Pending}

	case Rejected:
		if o.Loading() {
			return o
		}
		return Outcome{phase: Failed, message: e.Message}

	case Resolved:
		if !o.Loading() {
			return o
		}
		results := make([]model.MonthResult, len(e.Results))
		copy(results, e.Results)
		return Outcome{phase: Succeeded, results: results}

	case Faulted:
		if !o.Loading() {
			return o
		}
		msg := e.Message
		if msg == "" {
			msg = FallbackMessage
		}
		return Outcome{phase: Failed, message: msg}
	}
	return o
}
