package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/repository"
)

// Chime plays the audible new-order cue. Playback is best-effort: an
// error is logged and swallowed, never surfaced.
type Chime interface {
	Play() error
}

// Watcher turns observed new-order insertions into dashboard alerts.
// Only orders created within the recency window before observation
// trigger one; anything older is an old document, not breaking news.
type Watcher struct {
	hub    *Hub
	window time.Duration
	chime  Chime
	logger *zap.Logger

	now func() time.Time
}

func NewWatcher(hub *Hub, window time.Duration, chime Chime, logger *zap.Logger) *Watcher {
	return &Watcher{
		hub:    hub,
		window: window,
		chime:  chime,
		logger: logger,
		now:    time.Now,
	}
}

// Run consumes the change stream until it closes or ctx ends. Meant to
// run as a background goroutine for the dashboard session's lifetime.
func (w *Watcher) Run(ctx context.Context, changes <-chan repository.OrderChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			w.handle(change)
		}
	}
}

func (w *Watcher) handle(change repository.OrderChange) {
	age := w.now().Sub(change.Order.CreatedAt)
	if age >= w.window {
		w.logger.Debug("stale new order ignored",
			zap.String("order_id", change.Order.ID),
			zap.Duration("age", age))
		return
	}

	name := change.Order.CustomerName
	if name == "" {
		name = "khách lẻ"
	}
	alert := NewAlert(fmt.Sprintf("Có đơn hàng mới từ %s!", name), SeverityInfo)
	alert.OrderID = change.Order.ID
	alert.Sound = true
	w.hub.Publish(alert)

	w.logger.Info("new order alert raised",
		zap.String("order_id", change.Order.ID),
		zap.Duration("age", age))

	if w.chime != nil {
		if err := w.chime.Play(); err != nil {
			w.logger.Debug("chime playback failed", zap.Error(err))
		}
	}
}
