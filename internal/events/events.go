package events

import (
	"time"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
)

const (
	TypeStatusChanged = "order.status_changed"
	TypeOrderEdited   = "order.edited"
	TypeOrderDeleted  = "order.deleted"
)

type StatusChangedEvent struct {
	EventID    string        `json:"event_id"`
	OrderID    string        `json:"order_id"`
	FromStatus domain.Status `json:"from_status"`
	ToStatus   domain.Status `json:"to_status"`
	Timestamp  time.Time     `json:"timestamp"`
	RequestID  string        `json:"request_id"`
}

type OrderEditedEvent struct {
	EventID     string             `json:"event_id"`
	OrderID     string             `json:"order_id"`
	Items       []domain.OrderItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	Timestamp   time.Time          `json:"timestamp"`
	RequestID   string             `json:"request_id"`
}

type OrderDeletedEvent struct {
	EventID   string        `json:"event_id"`
	OrderID   string        `json:"order_id"`
	Status    domain.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id"`
}
