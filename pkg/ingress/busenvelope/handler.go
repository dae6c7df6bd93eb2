package busenvelope

import (
	"io"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/lwolf/dbautoscaler/pkg/ingress"
)

// Handler serves a push-subscription webhook endpoint: decode the
// envelope, run one tick, acknowledge with 200 regardless of tick outcome
// so the bus does not redeliver a message the core has already handled.
type Handler struct {
	Ticker ingress.Ticker
	Log    logr.Logger
}

func NewHandler(ticker ingress.Ticker, log logr.Logger) *Handler {
	return &Handler{Ticker: ticker, Log: log.WithName("busenvelope")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	s, err := Decode(body)
	if err != nil {
		h.Log.Info("malformed push envelope, acknowledging without a tick", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	if _, err := h.Ticker.Tick(r.Context(), s); err != nil {
		h.Log.Info("tick aborted", "instance", s.InstanceID, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}
