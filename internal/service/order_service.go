package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
)

// ErrNotDeletable is returned when a delete is requested for an order
// whose status forbids it.
var ErrNotDeletable = errors.New("order status does not permit deletion")

// OrderStore is the slice of the repository the service needs.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByDay(ctx context.Context, day time.Time) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	UpdateStatus(ctx context.Context, id string, next domain.Status) error
	UpdateItems(ctx context.Context, id string, items []domain.OrderItem, total float64) error
	DeleteOrder(ctx context.Context, id string) error
}

// EventPublisher feeds the downstream notification pipeline.
// Failures are logged and swallowed; no user action fails over them.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, orderID string, from, to domain.Status, requestID string) error
	PublishOrderEdited(ctx context.Context, orderID string, items []domain.OrderItem, total float64, requestID string) error
	PublishOrderDeleted(ctx context.Context, orderID string, last domain.Status, requestID string) error
}

type OrderService struct {
	store    OrderStore
	producer EventPublisher
	logger   *zap.Logger
}

func NewOrderService(store OrderStore, producer EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// Dashboard is one full refresh: summary numbers plus the orders
// grouped into the five status tabs.
type Dashboard struct {
	Stats DashboardStats
	Tabs  map[domain.Status][]domain.Order
}

// LoadDashboard fetches today's orders and the full order list
// concurrently and joins both before assembling the view. Either leg
// failing fails the whole load; the caller keeps its last state.
func (s *OrderService) LoadDashboard(ctx context.Context) (Dashboard, error) {
	var (
		todayOrders []domain.Order
		allOrders   []domain.Order
		todayErr    error
		allErr      error
	)

	done := make(chan struct{}, 2)
	go func() {
		todayOrders, todayErr = s.store.ListOrdersByDay(ctx, time.Now())
		done <- struct{}{}
	}()
	go func() {
		allOrders, allErr = s.store.ListOrders(ctx)
		done <- struct{}{}
	}()
	<-done
	<-done

	if todayErr != nil {
		return Dashboard{}, fmt.Errorf("load today's orders: %w", todayErr)
	}
	if allErr != nil {
		return Dashboard{}, fmt.Errorf("load orders: %w", allErr)
	}

	tabs, unknown := domain.GroupByStatus(allOrders)
	for _, o := range unknown {
		s.logger.Warn("order has unrecognized status, hidden from dashboard",
			zap.String("order_id", o.ID),
			zap.String("status", string(o.Status)))
	}

	return Dashboard{
		Stats: ComputeStats(todayOrders, allOrders),
		Tabs:  tabs,
	}, nil
}

// ChangeStatus moves an order along the workflow. The requested edge
// is validated against the state machine before anything is written;
// an illegal request changes nothing.
func (s *OrderService) ChangeStatus(ctx context.Context, id string, next domain.Status, requestID string) error {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(next) {
		return domain.ErrIllegalTransition{From: order.Status, To: next}
	}

	if err := s.store.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	if err := s.producer.PublishStatusChanged(ctx, id, order.Status, next, requestID); err != nil {
		s.logger.Error("failed to publish status-changed event",
			zap.String("order_id", id),
			zap.Error(err))
	}
	return nil
}

// Delete removes an order. Only new and archived orders may be
// deleted; archived deletion is permanent.
func (s *OrderService) Delete(ctx context.Context, id, requestID string) error {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.Deletable() {
		return fmt.Errorf("%w: %s", ErrNotDeletable, order.Status)
	}

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.logger.Info("order deleted",
		zap.String("order_id", id),
		zap.String("status", string(order.Status)))

	if err := s.producer.PublishOrderDeleted(ctx, id, order.Status, requestID); err != nil {
		s.logger.Error("failed to publish order-deleted event",
			zap.String("order_id", id),
			zap.Error(err))
	}
	return nil
}

// GetOrder fetches a single order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// BeginEdit loads the order and opens a working copy. An order deleted
// elsewhere surfaces as the store's not-found error and no session is
// opened.
func (s *OrderService) BeginEdit(ctx context.Context, id string) (*EditSession, domain.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, domain.Order{}, err
	}
	return NewEditSession(order), order, nil
}

// SaveEdit commits a working copy: items and the recomputed total
// only, plus a refreshed updatedAt stamped by the store.
func (s *OrderService) SaveEdit(ctx context.Context, session *EditSession, requestID string) error {
	if session == nil {
		return errors.New("no edit session open")
	}

	items := session.Items()
	total := session.Total()
	if err := s.store.UpdateItems(ctx, session.OrderID(), items, total); err != nil {
		return err
	}

	s.logger.Info("order items updated",
		zap.String("order_id", session.OrderID()),
		zap.Int("items", len(items)),
		zap.Float64("total_amount", total))

	if err := s.producer.PublishOrderEdited(ctx, session.OrderID(), items, total, requestID); err != nil {
		s.logger.Error("failed to publish order-edited event",
			zap.String("order_id", session.OrderID()),
			zap.Error(err))
	}
	return nil
}

// DayReport summarizes an arbitrary day, midnight to midnight local
// time, with the dashboard's revenue inclusion rule.
func (s *OrderService) DayReport(ctx context.Context, day time.Time) (DayReport, error) {
	orders, err := s.store.ListOrdersByDay(ctx, day)
	if err != nil {
		return DayReport{}, fmt.Errorf("load orders for %s: %w", day.Format("2006-01-02"), err)
	}
	return ComputeDayReport(orders, day), nil
}
