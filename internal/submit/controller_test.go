package submit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/model"
	"github.com/theirongolddev/greencarbon/internal/predict"
)

// fakePredictor records calls and returns canned values.
type fakePredictor struct {
	results []model.MonthResult
	err     error
	panicV  any
	calls   int
	last    intake.Payload
	during  func()
}

func (f *fakePredictor) Predict(_ context.Context, p intake.Payload) ([]model.MonthResult, error) {
	f.calls++
	f.last = p
	if f.during != nil {
		f.during()
	}
	if f.panicV != nil {
		panic(f.panicV)
	}
	return f.results, f.err
}

func textState(text string) intake.State {
	var s intake.State
	s.SetText(text)
	return s
}

func sampleMonths() []model.MonthResult {
	return []model.MonthResult{{
		Month:           "2024-03",
		TotalAmt:        120000,
		ClusterNameHint: "Eco-Saver",
		CarbonKg:        42.3,
		CarbonScore:     87.0,
	}}
}

// assertExclusive checks that a resolved outcome holds exactly one of results or message.
func assertExclusive(t *testing.T, o Outcome) {
	t.Helper()
	require.False(t, o.Loading())
	hasResults := o.Results() != nil
	hasMessage := o.Message() != ""
	assert.True(t, hasResults != hasMessage, "results=%v message=%q", o.Results(), o.Message())
}

func TestSubmit_ValidationSkipsNetwork(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)

	out := c.Submit(context.Background(), textState("   "))
	assert.Equal(t, 0, fp.calls)
	assert.Equal(t, Failed, out.Phase())
	assert.Equal(t, ValidationMessage, out.Message())
	assert.Nil(t, out.Results())
	assertExclusive(t, out)
}

func TestSubmit_ValidationClearsPreviousResult(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)

	require.Equal(t, Succeeded, c.Submit(context.Background(), textState("Coffee 5000")).Phase())

	out := c.Submit(context.Background(), textState(""))
	assert.Nil(t, out.Results())
	assert.Equal(t, ValidationMessage, out.Message())
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)

	var s intake.State
	s.SetText("Coffee 5000")
	s.SetDate("2024-03-01")

	out := c.Submit(context.Background(), s)
	assert.Equal(t, 1, fp.calls)
	assert.Equal(t, "Coffee 5000", fp.last.Text)
	assert.Equal(t, "2024-03-01", fp.last.Date)
	assert.Nil(t, fp.last.File)

	assert.Equal(t, Succeeded, out.Phase())
	require.Len(t, out.Results(), 1)
	assert.Equal(t, "2024-03", out.Results()[0].Month)
	assertExclusive(t, out)
}

func TestSubmit_EmptyResultsIsSuccess(t *testing.T) {
	t.Parallel()

	c := NewController(&fakePredictor{results: nil}, nil)
	out := c.Submit(context.Background(), textState("x"))

	assert.Equal(t, Succeeded, out.Phase())
	assert.NotNil(t, out.Results())
	assert.Empty(t, out.Results())
	assertExclusive(t, out)
}

func TestSubmit_ErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server body", &predict.StatusError{StatusCode: 400, Body: "invalid date format"}, "invalid date format"},
		{"server empty", &predict.StatusError{StatusCode: 500}, "HTTP 500"},
		{"transport", &predict.TransportError{Err: errors.New("connection refused")}, "connection refused"},
		{"transport no description", &predict.TransportError{}, FallbackMessage},
		{"malformed", &predict.MalformedError{Reason: "expected a JSON array"}, "malformed response: expected a JSON array"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewController(&fakePredictor{err: tt.err}, nil)
			out := c.Submit(context.Background(), textState("x"))
			assert.Equal(t, Failed, out.Phase())
			assert.Equal(t, tt.want, out.Message())
			assertExclusive(t, out)
		})
	}
}

func TestSubmit_BusyFlag(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)

	var loadingDuring bool
	fp.during = func() { loadingDuring = c.Outcome().Loading() }

	assert.False(t, c.Outcome().Loading())
	c.Submit(context.Background(), textState("x"))
	assert.True(t, loadingDuring)
	assert.False(t, c.Outcome().Loading())

	fp.err = &predict.TransportError{Err: errors.New("boom")}
	c.Submit(context.Background(), textState("x"))
	assert.True(t, loadingDuring)
	assert.False(t, c.Outcome().Loading())
}

func TestSubmit_PanicReleasesBusyFlag(t *testing.T) {
	t.Parallel()

	c := NewController(&fakePredictor{panicV: "predictor exploded"}, nil)

	out := c.Submit(context.Background(), textState("x"))
	assert.False(t, out.Loading())
	assert.False(t, c.Outcome().Loading())
	assert.Equal(t, "predictor exploded", out.Message())
	assertExclusive(t, out)
}

func TestBegin_SingleFlight(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)

	p, ok := c.Begin(textState("first"))
	require.True(t, ok)
	assert.True(t, c.Outcome().Loading())

	_, ok = c.Begin(textState("second"))
	assert.False(t, ok)
	assert.True(t, c.Outcome().Loading())

	// An invalid input while pending does not replace the pending state either.
	_, ok = c.Begin(textState(""))
	assert.False(t, ok)
	assert.True(t, c.Outcome().Loading())

	out := c.Finish(c.Exchange(context.Background(), p))
	assert.Equal(t, 1, fp.calls)
	assert.Equal(t, "first", fp.last.Text)
	assert.Equal(t, Succeeded, out.Phase())
}

func TestReject(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)
	require.Equal(t, Succeeded, c.Submit(context.Background(), textState("x")).Phase())

	out := c.Reject(FileErrorPrefix + "permission denied")
	assert.Equal(t, Failed, out.Phase())
	assert.Equal(t, FileErrorPrefix+"permission denied", out.Message())
	assert.Empty(t, out.Results())
	assertExclusive(t, out)

	// Ignored while a request is pending.
	p, ok := c.Begin(textState("y"))
	require.True(t, ok)
	assert.True(t, c.Reject("late").Loading())

	assert.Equal(t, Succeeded, c.Finish(c.Exchange(context.Background(), p)).Phase())
	assert.Equal(t, 2, fp.calls)
}

func TestSubmit_ResubmitReplacesResults(t *testing.T) {
	t.Parallel()

	fp := &fakePredictor{results: sampleMonths()}
	c := NewController(fp, nil)
	s := textState("x")

	c.Submit(context.Background(), s)
	fp.results = []model.MonthResult{{Month: "2024-04"}, {Month: "2024-05"}}
	out := c.Submit(context.Background(), s)

	assert.Equal(t, 2, fp.calls)
	require.Len(t, out.Results(), 2)
	assert.Equal(t, "2024-04", out.Results()[0].Month)
}

func TestSubmit_AgainstHTTPBackend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("date") == "bogus" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "invalid date format")
			return
		}
		_, _ = io.WriteString(w, `[{"month":"2024-03","total_amt":120000,"cluster_name_hint":"Eco-Saver",`+
			`"carbon_kg":42.3,"carbon_score":87.0,"recommendations":[]}]`)
	}))
	defer srv.Close()

	c := NewController(predict.NewClient(srv.URL), nil)

	s := textState("Coffee 5000")
	out := c.Submit(context.Background(), s)
	require.Equal(t, Succeeded, out.Phase())
	require.Len(t, out.Results(), 1)

	s.SetDate("bogus")
	out = c.Submit(context.Background(), s)
	assert.Equal(t, Failed, out.Phase())
	assert.Equal(t, "invalid date format", out.Message())
	assert.Nil(t, out.Results())
}
