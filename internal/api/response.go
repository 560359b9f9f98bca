package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes v as the response body with the given status. The status
// line is already out when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

// failure is the envelope for endpoints with no richer report to return;
// document validation failures carry a full validationReport instead.
type failure struct {
	Error string `json:"error"`
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failure{Error: msg})
}
