package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/aggregate"
	"github.com/gartstein/layofflens/internal/layoffs/controller"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/layoffs/labels"
	"github.com/gartstein/layofflens/internal/layoffs/metrics"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every /api response.
type envelope struct {
	Data       any                `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
}

// HTTPHandler serves the JSON REST surface.
type HTTPHandler struct {
	service   AnalyticsController
	labels    *labels.Labeler
	marshaler runtime.Marshaler
	logger    *zap.Logger
}

func NewHTTPHandler(service AnalyticsController, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service:   service,
		labels:    labels.New(),
		marshaler: &runtime.JSONBuiltin{},
		logger:    logger.Named("http_handler"),
	}
}

// route binds a handler to a method and path on the gateway mux.
type route struct {
	method  string
	path    string
	handler runtime.HandlerFunc
}

func (h *HTTPHandler) routes() []route {
	return []route{
		{http.MethodGet, "/api/layoffs", h.listLayoffs},
		{http.MethodPost, "/api/layoffs", h.createLayoff},
		{http.MethodGet, "/api/stats", h.stats},
		{http.MethodGet, "/api/geographic", h.geographic},
		{http.MethodGet, "/api/industries", h.industries},
		{http.MethodGet, "/api/timeseries", h.timeSeries},
		{http.MethodGet, "/api/sectors", h.sectors},
		{http.MethodGet, "/api/locations", h.locations},
		{http.MethodGet, "/api/dashboard", h.dashboard},
	}
}

// Register adds every API route to mux, instrumented with m (which may be nil).
func (h *HTTPHandler) Register(mux *runtime.ServeMux, m *metrics.Metrics) error {
	for _, rt := range h.routes() {
		if err := mux.HandlePath(rt.method, rt.path, instrument(m, rt.method+" "+rt.path, rt.handler)); err != nil {
			return err
		}
	}
	if err := mux.HandlePath(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		m.Handler().ServeHTTP(w, r)
	}); err != nil {
		return err
	}
	return mux.HandlePath(http.MethodGet, "/healthz", func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func (h *HTTPHandler) listLayoffs(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch layoffs"
	get := r.URL.Query().Get
	filter, err := parseFilter(get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	page, err := parseInt(get, paramPage, controller.DefaultPage, controller.MaxPage)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	limit, err := parseInt(get, paramLimit, controller.DefaultLimit, math.MaxInt)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}

	result, err := h.service.Layoffs(r.Context(), filter, page, limit)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{
		Data:       decorate(h.labels, result.Records),
		Pagination: &result.Pagination,
		Success:    true,
	})
}

func (h *HTTPHandler) createLayoff(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to create layoff"
	var req createLayoffRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body: %v", e.ErrInvalidInput, err), failure)
		return
	}
	rec, err := req.toModel()
	if err != nil {
		h.writeError(w, err, failure)
		return
	}

	created, err := h.service.CreateLayoff(r.Context(), rec)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{Data: created, Success: true})
}

func (h *HTTPHandler) stats(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch stats"
	filter, err := parseFilter(r.URL.Query().Get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	stats, err := h.service.Stats(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{Data: stats, Success: true})
}

func (h *HTTPHandler) geographic(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch geographic data"
	filter, err := parseFilter(r.URL.Query().Get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	summary, err := h.service.Geographic(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{Data: summary, Success: true})
}

func (h *HTTPHandler) industries(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch industry distribution"
	get := r.URL.Query().Get
	filter, err := parseFilter(get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	top, err := parseInt(get, paramTop, aggregate.DefaultTopIndustries, math.MaxInt)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	points, err := h.service.Industries(r.Context(), filter, top)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{Data: points, Success: true})
}

func (h *HTTPHandler) timeSeries(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch time series"
	get := r.URL.Query().Get
	filter, err := parseFilter(get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	months, err := parseInt(get, paramMonths, aggregate.DefaultMonths, aggregate.MaxMonths)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	series, err := h.service.TimeSeries(r.Context(), filter, months)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{Data: series, Success: true})
}

func (h *HTTPHandler) sectors(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	values, err := h.service.Sectors(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to fetch sectors")
		return
	}
	h.write(w, http.StatusOK, envelope{Data: values, Success: true})
}

func (h *HTTPHandler) locations(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	values, err := h.service.Locations(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to fetch locations")
		return
	}
	h.write(w, http.StatusOK, envelope{Data: values, Success: true})
}

func (h *HTTPHandler) dashboard(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	const failure = "Failed to fetch dashboard"
	filter, err := parseFilter(r.URL.Query().Get)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	dash, err := h.service.Dashboard(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, failure)
		return
	}
	h.write(w, http.StatusOK, envelope{
		Data:    dashboardView{Dashboard: dash, Recent: decorate(h.labels, dash.Recent)},
		Success: true,
	})
}

// writeError answers 400 with the validation message for invalid input and
// 500 with the generic failure text for everything else.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error, failure string) {
	if errors.Is(err, e.ErrInvalidInput) {
		h.write(w, http.StatusBadRequest, envelope{Error: err.Error()})
		return
	}
	h.logger.Error(failure, zap.Error(err))
	h.write(w, http.StatusInternalServerError, envelope{Error: failure})
}

func (h *HTTPHandler) write(w http.ResponseWriter, code int, body envelope) {
	buf, err := h.marshaler.Marshal(body)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(body))
	w.WriteHeader(code)
	if _, err := w.Write(buf); err != nil {
		h.logger.Debug("Failed to write response", zap.Error(err))
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(m *metrics.Metrics, name string, next runtime.HandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r, pathParams)
		m.ObserveRequest(name, rec.code, time.Since(start))
	}
}
