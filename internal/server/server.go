package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/soskin/vacancy-shadow-liability/internal/logger"
	"github.com/soskin/vacancy-shadow-liability/pkg/dataset"
	"github.com/soskin/vacancy-shadow-liability/pkg/scenario"
	"github.com/soskin/vacancy-shadow-liability/pkg/validation"
	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// Server exposes model runs over a local JSON API. The scenario book and the
// dataset are re-read on every request so edits show up without a restart.
type Server struct {
	configPath      string
	inputPath       string
	defaultScenario string
	port            int
}

// New creates a server for the given scenario book and neighborhood data.
func New(configPath, inputPath, defaultScenario string, port int) *Server {
	return &Server{
		configPath:      configPath,
		inputPath:       inputPath,
		defaultScenario: defaultScenario,
		port:            port,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scenarios", s.handleScenarios)
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/schedule", s.handleSchedule)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Info("VSL server starting on http://localhost%s", addr)
	logger.Info("Scenarios: %s, data: %s", s.configPath, s.inputPath)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type runResponse struct {
	RunID string `json:"run_id"`
	*vsl.Outcome
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Vacancy Shadow Liability</title></head>
<body style="font-family:system-ui;max-width:40em;margin:3em auto">
<h1>Vacancy Shadow Liability</h1>
<ul>
<li><a href="/api/scenarios">/api/scenarios</a></li>
<li><a href="/api/results">/api/results?scenario=base</a></li>
<li><a href="/api/summary">/api/summary?scenario=base</a></li>
<li>/api/schedule?scenario=base&amp;neighborhood=NAME</li>
<li><a href="/api/validation">/api/validation</a></li>
</ul>
</body></html>`)
}

func (s *Server) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	book, err := scenario.Load(s.configPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   s.defaultScenario,
		"scenarios": book.Names(),
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	out, err := s.run(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	out, err := s.run(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  out.RunID,
		"summary": out.Summary,
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("neighborhood")
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("neighborhood query parameter is required"))
		return
	}

	params, rows, err := s.load(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	for _, n := range rows {
		if n.Name != name {
			continue
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"scenario":        params.Scenario,
			"neighborhood":    n,
			"current_value":   vsl.CurrentValue(n, params),
			"per_unit":        vsl.ForegoneTaxSchedule(n, params),
			"foregone_tax_pv": vsl.ForegoneTaxPV(n, params),
		})
		return
	}
	writeError(w, http.StatusNotFound, fmt.Errorf("neighborhood %q not found", name))
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	report := validation.NewReport()

	book, err := scenario.Load(s.configPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, name := range book.Names() {
		raw, _ := book.Raw(name)
		report.Merge(validation.ValidateScenario(name, raw))
	}

	ds, err := dataset.Load(s.inputPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	report.Merge(ds.Report)
	report.Merge(validation.ValidateDataset(ds.Rows))

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) load(r *http.Request) (vsl.Parameters, []vsl.Neighborhood, error) {
	name := r.URL.Query().Get("scenario")
	if name == "" {
		name = s.defaultScenario
	}

	book, err := scenario.Load(s.configPath)
	if err != nil {
		return vsl.Parameters{}, nil, err
	}
	params, err := book.Parameters(name)
	if err != nil {
		return vsl.Parameters{}, nil, err
	}
	ds, err := dataset.Load(s.inputPath)
	if err != nil {
		return vsl.Parameters{}, nil, err
	}
	return params, ds.Rows, nil
}

func (s *Server) run(r *http.Request) (*runResponse, error) {
	params, rows, err := s.load(r)
	if err != nil {
		return nil, err
	}
	out, err := vsl.Run(rows, params)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger.Debug("run %s: scenario %s over %d neighborhoods", runID, params.Scenario, len(rows))
	return &runResponse{RunID: runID, Outcome: out}, nil
}

func statusFor(err error) int {
	var (
		missing *vsl.MissingParameterError
		invalid *vsl.InvalidConfigurationError
		empty   *vsl.EmptyDatasetError
	)
	switch {
	case errors.Is(err, scenario.ErrUnknownScenario),
		errors.As(err, &missing),
		errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger.Warn("request failed (%d): %v", status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
