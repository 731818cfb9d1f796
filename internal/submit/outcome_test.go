package submit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/greencarbon/internal/model"
	"github.com/theirongolddev/greencarbon/internal/predict"
)

func TestNext(t *testing.T) {
	t.Parallel()

	idle := Outcome{}
	pending := Next(idle, Started{})
	success := Next(pending, Resolved{Results: []model.MonthResult{{Month: "2024-01"}}})
	failure := Next(pending, Faulted{Message: "nope"})

	assert.Equal(t, Idle, idle.Phase())
	assert.Equal(t, Pending, pending.Phase())
	assert.True(t, pending.Loading())
	assert.Nil(t, pending.Results())
	assert.Empty(t, pending.Message())

	assert.Equal(t, Succeeded, success.Phase())
	assert.Len(t, success.Results(), 1)
	assert.Empty(t, success.Message())

	assert.Equal(t, Failed, failure.Phase())
	assert.Equal(t, "nope", failure.Message())
	assert.Nil(t, failure.Results())

	// Starting again clears both slots.
	assert.Equal(t, Outcome{phase: Pending}, Next(success, Started{}))
	assert.Equal(t, Outcome{phase: Pending}, Next(failure, Started{}))
}

func TestNext_IgnoresOutOfOrderEvents(t *testing.T) {
	t.Parallel()

	idle := Outcome{}
	assert.Equal(t, idle, Next(idle, Resolved{}))
	assert.Equal(t, idle, Next(idle, Faulted{Message: "late"}))

	pending := Next(idle, Started{})
	assert.Equal(t, pending, Next(pending, Started{}))
	assert.Equal(t, pending, Next(pending, Rejected{Message: ValidationMessage}))
}

func TestNext_DoesNotAliasResults(t *testing.T) {
	t.Parallel()

	in := []model.MonthResult{{Month: "2024-01"}}
	out := Next(Next(Outcome{}, Started{}), Resolved{Results: in})
	in[0].Month = "changed"
	assert.Equal(t, "2024-01", out.Results()[0].Month)
}

func TestNext_EmptyFaultUsesFallback(t *testing.T) {
	t.Parallel()

	out := Next(Next(Outcome{}, Started{}), Faulted{})
	assert.Equal(t, FallbackMessage, out.Message())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindServer, Classify(&predict.StatusError{StatusCode: 400}))
	assert.Equal(t, KindMalformed, Classify(&predict.MalformedError{Reason: "x"}))
	assert.Equal(t, KindTransport, Classify(&predict.TransportError{Err: errors.New("x")}))
	assert.Equal(t, KindTransport, Classify(errors.New("other")))
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "invalid date format", Describe(&predict.StatusError{StatusCode: 400, Body: "invalid date format"}))
	assert.Contains(t, Describe(&predict.StatusError{StatusCode: 500}), "500")
	assert.Equal(t, FallbackMessage, Describe(&predict.TransportError{}))
	assert.Equal(t, FallbackMessage, Describe(errors.New("  ")))
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "success", Succeeded.String())
	assert.Equal(t, "failure", Failed.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
