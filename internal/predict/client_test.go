package predict

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/greencarbon/internal/intake"
)

const sampleBody = `[{"month":"2024-03","total_amt":120000,"cluster_name_hint":"Eco-Saver",` +
	`"carbon_kg":42.3,"carbon_score":87.0,"recommendations":[` +
	`{"category":"transport","action":"Take the subway","expected_reduction_kg":3.5,"tip":"Monthly pass"}]}]`

func textPayload(text string) intake.Payload {
	var s intake.State
	s.SetText(text)
	return s.Payload()
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://api.example.com", NormalizeBaseURL("http://api.example.com///"))
	assert.Equal(t, "http://api.example.com", NormalizeBaseURL(" http://api.example.com "))
	assert.Equal(t, DefaultBaseURL, NormalizeBaseURL(""))
	assert.Equal(t, DefaultBaseURL, NormalizeBaseURL("/"))

	c := NewClient("http://host:9000/")
	assert.Equal(t, "http://host:9000/predict", c.Endpoint())
}

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Coffee 5000", r.FormValue("text"))
		_, hasDate := r.MultipartForm.Value["date"]
		assert.False(t, hasDate)
		assert.Empty(t, r.MultipartForm.File)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL+"/").Predict(context.Background(), textPayload("  Coffee 5000  "))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03", got[0].Month)
	assert.InDelta(t, 120000, got[0].TotalAmt, 1e-9)
	assert.Equal(t, "Eco-Saver", got[0].ClusterNameHint)
	require.Len(t, got[0].Recommendations, 1)
	assert.Equal(t, "Take the subway", got[0].Recommendations[0].Action)
}

func TestPredict_FilePart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "report.csv", hdr.Filename)
		assert.Equal(t, "a,b\n", string(data))
		_, hasText := r.MultipartForm.Value["text"]
		assert.False(t, hasText)

		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	var s intake.State
	s.SetFile(intake.Blob{Name: "report.csv", Data: []byte("a,b\n")})

	got, err := NewClient(srv.URL).Predict(context.Background(), s.Payload())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPredict_FileAndTextBothSent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "report.csv", hdr.Filename)
		assert.Equal(t, "a,b\n", string(data))
		assert.Equal(t, "Coffee 5000", r.FormValue("text"))
		assert.Equal(t, "2024-03-01", r.FormValue("date"))

		_, _ = io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	var s intake.State
	s.SetFile(intake.Blob{Name: "report.csv", Data: []byte("a,b\n")})
	s.SetText("Coffee 5000")
	s.SetDate("2024-03-01")

	got, err := NewClient(srv.URL).Predict(context.Background(), s.Payload())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPredict_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"body verbatim", http.StatusBadRequest, "invalid date format", "invalid date format"},
		{"trailing newline trimmed", http.StatusBadRequest, "invalid date format\n", "invalid date format"},
		{"empty body", http.StatusInternalServerError, "", "HTTP 500"},
		{"whitespace body", http.StatusBadGateway, "  \n", "HTTP 502"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Predict(context.Background(), textPayload("x"))
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestPredict_Malformed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), textPayload("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestPredict_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Predict(context.Background(), textPayload("x"))
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.NotEmpty(t, err.Error())
}

func TestPredict_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, WithTimeout(20*time.Millisecond)).Predict(context.Background(), textPayload("x"))
	require.Error(t, err)

	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
