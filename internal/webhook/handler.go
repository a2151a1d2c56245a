package webhook

import (
	"context"
	"io"
	"net/http"

	"github.com/barkanor/leadgate/pkg/logging"
)

// Handler owns the HTTP surface for event intake. The webhook endpoint
// acknowledges before any processing starts, so the gateway's retry timer
// never couples to our (slower, externally-dependent) pipeline latency.
type Handler struct {
	processor *Processor
	maxBody   int64
	logger    *logging.Logger
}

// NewHandler creates the webhook HTTP handler.
func NewHandler(processor *Processor, maxBody int64, logger *logging.Logger) *Handler {
	if processor == nil {
		panic("webhook: processor required")
	}
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{processor: processor, maxBody: maxBody, logger: logger}
}

// Liveness answers the root liveness probe.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("leadgate is running"))
}

// Receive accepts a webhook event. It always answers 200 regardless of what
// happens downstream; the body is handed to the pipeline on a detached
// goroutine with a background context, and the pipeline's result is never
// reported back to the gateway.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.logger.Warn("webhook body rejected", "error", err)
		body = nil
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))

	if len(body) == 0 {
		return
	}
	go h.processor.Process(context.Background(), body)
}
