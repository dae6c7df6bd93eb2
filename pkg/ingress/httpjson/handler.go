// Package httpjson adapts a JSON HTTP body into a tick call.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/lwolf/dbautoscaler/pkg/ingress"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// Handler decodes a JSON-encoded snapshot.Snapshot from the request body,
// runs one tick, and responds with the resulting decision.
type Handler struct {
	Ticker ingress.Ticker
	Log    logr.Logger
}

func NewHandler(ticker ingress.Ticker, log logr.Logger) *Handler {
	return &Handler{Ticker: ticker, Log: log.WithName("httpjson")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var s snapshot.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	decision, err := h.Ticker.Tick(r.Context(), s)
	if err != nil {
		h.Log.Info("tick aborted", "instance", s.InstanceID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(decision); err != nil {
		h.Log.Info("failed to encode decision response", "error", err)
	}
}
