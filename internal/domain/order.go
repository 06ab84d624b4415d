package domain

import (
	"strconv"
	"strings"
	"time"
)

type ServiceType string

const (
	ServiceDineIn   ServiceType = "dine-in"
	ServiceDelivery ServiceType = "delivery"
	ServiceUnknown  ServiceType = ""
)

// Label returns the customer-facing name of the service type.
func (s ServiceType) Label() string {
	switch s {
	case ServiceDineIn:
		return "Uống tại quán"
	case ServiceDelivery:
		return "Giao hàng"
	default:
		return "Chưa xác định"
	}
}

type Topping struct {
	Name  string  `firestore:"name" json:"name"`
	Price float64 `firestore:"price" json:"price"`
}

type OrderItem struct {
	Name     string    `firestore:"name" json:"name"`
	Price    float64   `firestore:"price" json:"price"`
	Quantity int       `firestore:"quantity" json:"quantity"`
	Toppings []Topping `firestore:"toppings" json:"toppings"`
}

// Subtotal is the item's contribution to the order total. Each topping
// is charged once per unit of the parent item.
func (i OrderItem) Subtotal() float64 {
	sum := i.Price * float64(i.Quantity)
	for _, t := range i.Toppings {
		sum += t.Price * float64(i.Quantity)
	}
	return sum
}

type Order struct {
	ID              string      `firestore:"-" json:"id"`
	CustomerName    string      `firestore:"customerName" json:"customerName,omitempty"`
	CustomerPhone   string      `firestore:"customerPhone" json:"customerPhone,omitempty"`
	ServiceType     ServiceType `firestore:"serviceType" json:"serviceType"`
	CustomerAddress string      `firestore:"customerAddress" json:"customerAddress,omitempty"`
	OrderNotes      string      `firestore:"orderNotes" json:"orderNotes,omitempty"`
	Items           []OrderItem `firestore:"items" json:"items"`
	Status          Status      `firestore:"status" json:"status"`
	TotalAmount     float64     `firestore:"totalAmount" json:"totalAmount"`
	CreatedAt       time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

// DisplayID is the short order reference shown on the dashboard card.
func (o Order) DisplayID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// ItemTotal recomputes the order total from its items. The stored
// TotalAmount must match this at the time of the last save.
func ItemTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// GroupByStatus buckets orders into the five dashboard tabs, preserving
// input order. Orders with an unrecognized status are excluded from
// every tab and returned separately so the caller can log them.
func GroupByStatus(orders []Order) (map[Status][]Order, []Order) {
	tabs := make(map[Status][]Order, len(AllStatuses))
	for _, s := range AllStatuses {
		tabs[s] = []Order{}
	}
	var unknown []Order
	for _, o := range orders {
		if _, ok := ParseStatus(string(o.Status)); !ok {
			unknown = append(unknown, o)
			continue
		}
		tabs[o.Status] = append(tabs[o.Status], o)
	}
	return tabs, unknown
}

// FormatVND renders an amount the way the dashboard displays money:
// thousands-grouped with the đồng suffix. Fractional đồng never occurs
// on the menu, so anything past the decimal point is dropped.
func FormatVND(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	digits := strconv.Itoa(int(amount))
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}
	return strings.Join(parts, ".") + "đ"
}
