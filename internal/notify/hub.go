package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Color returns the toast background for a severity.
func (s Severity) Color() string {
	switch s {
	case SeveritySuccess:
		return "#28a745"
	case SeverityError:
		return "#dc3545"
	case SeverityWarning:
		return "#ffc107"
	default:
		return "#17a2b8"
	}
}

// DisplayDuration is how long a toast stays on screen before
// auto-dismissing.
const DisplayDuration = 4 * time.Second

// Alert is one transient toast pushed to connected dashboards.
type Alert struct {
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Color      string   `json:"color"`
	DurationMS int64    `json:"durationMs"`
	Sound      bool     `json:"sound"`
	OrderID    string   `json:"orderId,omitempty"`
}

// NewAlert fills in the derived display fields.
func NewAlert(message string, severity Severity) Alert {
	return Alert{
		Message:    message,
		Severity:   severity,
		Color:      severity.Color(),
		DurationMS: DisplayDuration.Milliseconds(),
	}
}

// Hub fans alerts out to every subscribed dashboard session. Slow
// subscribers are skipped rather than blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Alert]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[chan Alert]struct{}),
		logger: logger,
	}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the session ends.
func (h *Hub) Subscribe() (<-chan Alert, func()) {
	ch := make(chan Alert, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the alert to every subscriber, dropping it for any
// whose buffer is full.
func (h *Hub) Publish(alert Alert) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- alert:
		default:
			h.logger.Warn("alert dropped for slow subscriber",
				zap.String("message", alert.Message))
		}
	}
}

// SubscriberCount is used by the health endpoint.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
