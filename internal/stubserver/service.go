// Package stubserver provides a local stand-in for the prediction backend.
// It implements the /predict multipart contract against a canned result set.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/model"
	"github.com/theirongolddev/greencarbon/internal/predict"
)

const (
	// MsgMissingInput is returned when a request carries neither a file nor text.
	MsgMissingInput = "file or text is required"
	// MsgInvalidDate is returned when the date part is not YYYY-MM-DD.
	MsgInvalidDate = "invalid date format"

	dateLayout     = "2006-01-02"
	maxUploadBytes = 10 << 20
)

// Config controls the stub server.
type Config struct {
	Addr         string
	Results      []model.MonthResult
	Delay        time.Duration // artificial latency per request
	EventsBuffer int
	Logger       *zap.Logger
}

// Event records one handled /predict request.
type Event struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Fields    []string  `json:"fields"`
	FileName  string    `json:"file_name,omitempty"`
	FileBytes int       `json:"file_bytes,omitempty"`
	Status    int       `json:"status"`
	Months    int       `json:"months"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt     time.Time `json:"started_at"`
	Requests      int64     `json:"requests"`
	Rejected      int64     `json:"rejected"`
	FixtureMonths int       `json:"fixture_months"`
	EventCount    int       `json:"event_count"`
}

// Service serves the stub API.
type Service struct {
	cfg Config
	log *zap.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	rejected    int64
	nextEventID int64
	events      []Event
}

// New returns a stub service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if cfg.Results == nil {
		cfg.Results = DefaultResults()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.L()
	}

	return &Service{
		cfg:       cfg,
		log:       log.Named("stub"),
		startedAt: time.Now(),
	}
}

// LoadFixture reads a result list from a JSON file. The file must satisfy the
// same schema the client enforces on real responses.
func LoadFixture(path string) ([]model.MonthResult, error) {
	//nolint:gosec // fixture path is supplied by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read fixture %s", path)
	}
	results, err := predict.DecodeResults(data)
	if err != nil {
		return nil, eris.Wrapf(err, "fixture %s", path)
	}
	return results, nil
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/status", s.handleStatus)
	r.Get("/v1/events", s.handleEvents)
	r.Post(predict.Path, s.handlePredict)
	return r
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.Int("fixture_months", len(s.cfg.Results)))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return eris.Wrap(err, "stub http server")
	}
}

func (s *Service) handlePredict(w http.ResponseWriter, r *http.Request) {
	ev := Event{
		Timestamp: time.Now(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	status, body := s.predict(r, &ev)
	ev.Status = status
	s.record(ev)

	s.log.Info("predict",
		zap.String("request_id", ev.RequestID),
		zap.Strings("fields", ev.Fields),
		zap.Int("status", status),
		zap.Int("months", ev.Months),
	)

	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
		return
	}

	if s.cfg.Delay > 0 {
		select {
		case <-time.After(s.cfg.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.cfg.Results)
}

// predict validates the multipart request and returns the status and error body.
func (s *Service) predict(r *http.Request, ev *Event) (int, string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return http.StatusBadRequest, "invalid multipart body"
	}

	hasFile := false
	if f, hdr, err := r.FormFile(intake.FieldFile); err == nil {
		data, readErr := io.ReadAll(f)
		_ = f.Close()
		if readErr != nil {
			return http.StatusBadRequest, "unreadable file part"
		}
		hasFile = true
		ev.FileName = hdr.Filename
		ev.FileBytes = len(data)
		ev.Fields = append(ev.Fields, intake.FieldFile)
	}

	text := strings.TrimSpace(r.FormValue(intake.FieldText))
	if text != "" {
		ev.Fields = append(ev.Fields, intake.FieldText)
	}
	date := strings.TrimSpace(r.FormValue(intake.FieldDate))
	if date != "" {
		ev.Fields = append(ev.Fields, intake.FieldDate)
	}

	if !hasFile && text == "" {
		return http.StatusBadRequest, MsgMissingInput
	}
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return http.StatusBadRequest, MsgInvalidDate
		}
	}

	ev.Months = len(s.cfg.Results)
	return http.StatusOK, ""
}

func (s *Service) record(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	if ev.Status != http.StatusOK {
		s.rejected++
	}
	s.nextEventID++
	ev.ID = s.nextEventID

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:     s.startedAt,
		Requests:      s.requests,
		Rejected:      s.rejected,
		FixtureMonths: len(s.cfg.Results),
		EventCount:    len(s.events),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

// DefaultResults is the built-in fixture served when no file is given.
func DefaultResults() []model.MonthResult {
	return []model.MonthResult{
		{
			Month:           "2024-03",
			TotalAmt:        120000,
			ClusterNameHint: "Eco-Saver",
			CarbonKg:        42.3,
			CarbonScore:     87.0,
			Recommendations: []model.Recommendation{
				{Category: "교통", Action: "가까운 거리는 대중교통 이용하기", ExpectedReductionKg: 3.2, Tip: "지하철 정기권을 활용해보세요"},
				{Category: "식음료", Action: "텀블러 사용하기", ExpectedReductionKg: 1.1},
			},
		},
		{
			Month:           "2024-04",
			TotalAmt:        348500,
			ClusterNameHint: "Delivery-Lover",
			CarbonKg:        118.6,
			CarbonScore:     54.5,
			Recommendations: []model.Recommendation{
				{Category: "배달", Action: "배달 주문을 포장으로 바꾸기", ExpectedReductionKg: 12.4, Tip: "일회용 수저 안 받기"},
			},
		},
	}
}
