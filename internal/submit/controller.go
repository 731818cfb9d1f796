package submit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/model"
)

// Predictor sends a payload to the prediction backend.
type Predictor interface {
	Predict(ctx context.Context, p intake.Payload) ([]model.MonthResult, error)
}

// Controller owns the outcome slot of the intake pipeline.
//
// Begin and Finish mutate the outcome and must be called from one goroutine (the UI
// loop). Exchange only reads immutable fields and may run elsewhere.
type Controller struct {
	predictor Predictor
	log       *zap.Logger
	outcome   Outcome
}

// NewController returns an idle controller. A nil logger uses zap's global logger.
func NewController(p Predictor, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.L()
	}
	return &Controller{predictor: p, log: log}
}

// Outcome returns the current state.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// Begin starts a submission. It returns the payload to send and true when the
// controller entered Pending. It returns false when a request is already pending,
// or when the input cannot be submitted, in which case the outcome is a validation
// failure and no request must be sent.
func (c *Controller) Begin(in intake.State) (intake.Payload, bool) {
	if c.outcome.Loading() {
		c.log.Debug("submit: ignored, request already pending")
		return intake.Payload{}, false
	}
	if !in.CanSubmit() {
		c.outcome = Next(c.outcome, Rejected{Message: ValidationMessage})
		c.log.Info("submit: rejected", zap.String("kind", string(KindValidation)))
		return intake.Payload{}, false
	}
	c.outcome = Next(c.outcome, Started{})
	return in.Payload(), true
}

// Reject fails an attempt that cannot be sent for a reason the intake state does
// not capture, such as an unreadable file. Like a validation failure it replaces
// any previous result. It is ignored while a request is pending.
func (c *Controller) Reject(msg string) Outcome {
	c.outcome = Next(c.outcome, Rejected{Message: msg})
	c.log.Info("submit: rejected", zap.String("kind", string(KindValidation)))
	return c.outcome
}

// Exchange performs the request and converts every result, including a panic in
// the predictor, into a Resolved or Faulted event.
func (c *Controller) Exchange(ctx context.Context, p intake.Payload) (ev Event) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("submit: predictor panicked", zap.Any("panic", r))
			ev = Faulted{Message: fmt.Sprint(r)}
		}
	}()

	results, err := c.predictor.Predict(ctx, p)
	if err != nil {
		c.log.Info("submit: failed",
			zap.String("kind", string(Classify(err))),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return Faulted{Message: Describe(err)}
	}

	c.log.Info("submit: succeeded",
		zap.Int("months", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Resolved{Results: results}
}

// Finish applies the event produced by Exchange and returns the new outcome.
func (c *Controller) Finish(ev Event) Outcome {
	c.outcome = Next(c.outcome, ev)
	return c.outcome
}

// Submit runs Begin, Exchange and Finish in sequence. The pending state is always
// released before Submit returns.
func (c *Controller) Submit(ctx context.Context, in intake.State) Outcome {
	p, ok := c.Begin(in)
	if !ok {
		return c.outcome
	}
	defer func() {
		if c.outcome.Loading() {
			c.outcome = Next(c.outcome, Faulted{Message: FallbackMessage})
		}
	}()

	return c.Finish(c.Exchange(ctx, p))
}
