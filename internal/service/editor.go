package service

import "github.com/trachanh-shop/order-dashboard/internal/domain"

// EditSession is a detached working copy of one order's items. The
// caller owns the session; the stored order is untouched until the
// session is saved, and a discarded session leaves no trace. The
// running total is recomputed synchronously on every mutation.
type EditSession struct {
	orderID string
	items   []domain.OrderItem
	total   float64
}

// NewEditSession deep-copies the order's items into a working copy.
func NewEditSession(order domain.Order) *EditSession {
	items := make([]domain.OrderItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = it
		items[i].Toppings = append([]domain.Topping(nil), it.Toppings...)
	}
	s := &EditSession{orderID: order.ID, items: items}
	s.recompute()
	return s
}

func (s *EditSession) OrderID() string { return s.orderID }

// Items returns a copy of the working items; mutating it does not
// affect the session.
func (s *EditSession) Items() []domain.OrderItem {
	out := make([]domain.OrderItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *EditSession) Total() float64 { return s.total }

// AddItem appends a menu item to the working copy. A topping-free item
// with the same name already present just gets its quantity bumped;
// items carrying toppings are never merge targets, toppings make the
// item a different line.
func (s *EditSession) AddItem(name string, unitPrice float64) {
	for i := range s.items {
		if s.items[i].Name == name && len(s.items[i].Toppings) == 0 {
			s.items[i].Quantity++
			s.recompute()
			return
		}
	}
	s.items = append(s.items, domain.OrderItem{
		Name:     name,
		Price:    unitPrice,
		Quantity: 1,
		Toppings: []domain.Topping{},
	})
	s.recompute()
}

// Replace swaps the whole working copy for the given items. Used when
// a client submits its edited item list in one shot; the total is
// recomputed here so the saved amount always matches the items.
func (s *EditSession) Replace(items []domain.OrderItem) {
	copied := make([]domain.OrderItem, len(items))
	for i, it := range items {
		copied[i] = it
		copied[i].Toppings = append([]domain.Topping(nil), it.Toppings...)
	}
	s.items = copied
	s.recompute()
}

// SetQuantity overwrites the quantity of the item at index. Quantities
// below 1 and out-of-range indexes are ignored.
func (s *EditSession) SetQuantity(index, quantity int) {
	if quantity < 1 || index < 0 || index >= len(s.items) {
		return
	}
	s.items[index].Quantity = quantity
	s.recompute()
}

// RemoveItem drops the item at index; out-of-range indexes are
// ignored. Confirmation happens in the UI before this is called.
func (s *EditSession) RemoveItem(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.recompute()
}

func (s *EditSession) recompute() {
	s.total = domain.ItemTotal(s.items)
}
