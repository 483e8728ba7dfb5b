package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

const defaultHeartbeat = 30 * time.Second

// SSEHandler streams record changes so open views can refresh
type SSEHandler struct {
	eventBus  providers.EventBus
	heartbeat time.Duration

	mu      sync.Mutex
	clients int
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		heartbeat: defaultHeartbeat,
	}
}

// StreamRecords handles GET /api/stream/records
func (h *SSEHandler) StreamRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	// The server write timeout bounds normal requests; a stream lives until the client leaves.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logger.Warn().Err(err).Msg("failed to clear write deadline for record stream")
	}

	events, err := h.eventBus.Subscribe(ctx, providers.EventChannelRecords)
	if err != nil {
		logger.Error().Err(err).Msg("failed to subscribe to record events")
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	h.track(1)
	defer h.track(-1)

	err = h.sendEvent(rc, w, "connected", map[string]interface{}{
		"channel":   providers.EventChannelRecords,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("record stream not writable")
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("client disconnected from record stream")
			return
		case <-ticker.C:
			err = h.sendEvent(rc, w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
		case event, ok := <-events:
			if !ok {
				return
			}
			err = h.sendEvent(rc, w, string(event.Type), event)
		}
		if err != nil {
			logger.Debug().Err(err).Msg("record stream write failed")
			return
		}
	}
}

func (h *SSEHandler) track(delta int) {
	h.mu.Lock()
	h.clients += delta
	h.mu.Unlock()
}

// ClientCount returns the number of connected stream clients
func (h *SSEHandler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients
}

// sendEvent writes and flushes one SSE frame
func (h *SSEHandler) sendEvent(rc *http.ResponseController, w http.ResponseWriter, eventType string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, jsonData); err != nil {
		return err
	}
	return rc.Flush()
}
