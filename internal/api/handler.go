package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathforge/gpml/internal/gpml"
	"github.com/pathforge/gpml/internal/metrics"
	"github.com/pathforge/gpml/internal/xref"
)

const maxBodyBytes = 10 << 20 // GPML uploads are capped at 10 MiB

// Handler holds all HTTP handler dependencies.
type Handler struct {
	loader *xref.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(loader *xref.Loader) http.Handler {
	h := &Handler{loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/pathways/validate", h.validatePathway)
	h.mux.HandleFunc("GET /v1/datasources", h.listDataSources)
	h.mux.HandleFunc("POST /v1/datasources/reload", h.reloadDataSources)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// validationReport summarises a loaded document for the caller.
type validationReport struct {
	RequestID     string   `json:"request_id"`
	Valid         bool     `json:"valid"`
	Title         string   `json:"title,omitempty"`
	Elements      int      `json:"elements"`
	DataNodes     int      `json:"data_nodes"`
	Interactions  int      `json:"interactions"`
	Groups        int      `json:"groups"`
	Annotations   int      `json:"annotations"`
	RepairedRefs  int      `json:"repaired_refs"`
	UnknownSource []string `json:"unknown_data_sources,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// POST /v1/pathways/validate — load a GPML body, run the dangling-reference
// sweep, and report what the document contains.
func (h *Handler) validatePathway(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	started := time.Now()

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	m, err := gpml.Read(body)
	if err != nil {
		metrics.PathwaysValidated.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, validationReport{
			RequestID: requestID,
			Valid:     false,
			Error:     err.Error(),
		})
		return
	}

	repaired := m.FixDanglingRefs()

	// Flag data sources the registry does not know about.
	reg := h.loader.Registry()
	unknown := map[string]struct{}{}
	for _, d := range m.DataNodes() {
		if x := d.Xref(); x != nil {
			if _, ok := reg.Lookup(x.DataSource); !ok {
				unknown[x.DataSource] = struct{}{}
			}
		}
	}
	var unknownList []string
	for s := range unknown {
		unknownList = append(unknownList, s)
	}

	metrics.PathwaysValidated.WithLabelValues("valid").Inc()
	metrics.ValidationDuration.Observe(float64(time.Since(started).Milliseconds()))
	writeJSON(w, http.StatusOK, validationReport{
		RequestID:     requestID,
		Valid:         true,
		Title:         m.Pathway().Title(),
		Elements:      m.ObjectCount(),
		DataNodes:     len(m.DataNodes()),
		Interactions:  len(m.Interactions()),
		Groups:        len(m.Groups()),
		Annotations:   len(m.Annotations()),
		RepairedRefs:  repaired,
		UnknownSource: unknownList,
	})
}

// GET /v1/datasources — list the loaded data source registry.
func (h *Handler) listDataSources(w http.ResponseWriter, r *http.Request) {
	reg := h.loader.Registry()
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   reg.Len(),
		"sources": reg.Sources(),
	})
}

// POST /v1/datasources/reload — hot-reload the registry from disk.
func (h *Handler) reloadDataSources(w http.ResponseWriter, r *http.Request) {
	reg, err := h.loader.Reload()
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"count":    reg.Len(),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
		)
	})
}
