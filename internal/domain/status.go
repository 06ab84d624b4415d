package domain

import "fmt"

// Status is the order's position in the fixed workflow
// new → processing → completed → paid → archived.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPaid       Status = "paid"
	StatusArchived   Status = "archived"
)

// AllStatuses lists the five workflow states in display order.
var AllStatuses = []Status{StatusNew, StatusProcessing, StatusCompleted, StatusPaid, StatusArchived}

// ParseStatus validates a raw status value from the store. Anything
// outside the five workflow states is reported as not ok.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted, StatusPaid, StatusArchived:
		return s, true
	}
	return s, false
}

// ErrIllegalTransition is returned when a requested status change is
// not one of the workflow's edges.
type ErrIllegalTransition struct {
	From, To Status
}

func (e ErrIllegalTransition) Error() string {
	return fmt.Sprintf("illegal status transition %q -> %q", e.From, e.To)
}

// transitions holds the legal edges: one forward step per state plus
// the permitted reverts (completed→processing, paid→completed,
// archived→paid).
var transitions = map[Status][]Status{
	StatusNew:        {StatusProcessing},
	StatusProcessing: {StatusCompleted},
	StatusCompleted:  {StatusPaid, StatusProcessing},
	StatusPaid:       {StatusArchived, StatusCompleted},
	StatusArchived:   {StatusPaid},
}

// CanTransitionTo reports whether next is a legal edge from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from s, forward step first.
func (s Status) NextStatuses() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// Deletable reports whether an order in this state may be deleted.
// Only untouched new orders and archived history may be removed;
// archived deletion is permanent.
func (s Status) Deletable() bool {
	return s == StatusNew || s == StatusArchived
}

// Editable reports whether the order's items may still be changed.
func (s Status) Editable() bool {
	return s == StatusNew || s == StatusProcessing
}

// StatusInfo is the fixed display metadata for one workflow state.
type StatusInfo struct {
	Label      string `json:"label"`
	BadgeClass string `json:"badgeClass"`
	EmptyText  string `json:"emptyText"`
}

var statusInfo = map[Status]StatusInfo{
	StatusNew:        {Label: "Đơn Mới", BadgeClass: "status-new", EmptyText: "Không có đơn hàng mới"},
	StatusProcessing: {Label: "Đang Làm", BadgeClass: "status-processing", EmptyText: "Không có đơn hàng đang làm"},
	StatusCompleted:  {Label: "Hoàn Thành", BadgeClass: "status-completed", EmptyText: "Không có đơn hàng hoàn thành"},
	StatusPaid:       {Label: "Đã Thanh Toán", BadgeClass: "status-paid", EmptyText: "Không có đơn hàng đã thanh toán"},
	StatusArchived:   {Label: "Đã Lưu Trữ", BadgeClass: "status-archived", EmptyText: "Không có lịch sử đơn hàng"},
}

// Info returns the display metadata for s. Unknown states get a
// placeholder label; they are never rendered as a tab.
func (s Status) Info() StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return StatusInfo{Label: "Không xác định", BadgeClass: "status-new"}
}
