package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
	pkgconfig "github.com/trachanh-shop/order-dashboard/pkg/config"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderChange is one insertion observed by the new-order watch.
type OrderChange struct {
	Order      domain.Order
	ObservedAt time.Time
}

type OrderRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

func NewFirestoreClient(ctx context.Context, cfg *pkgconfig.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return firestore.NewClient(ctx, cfg.ProjectID, opts...)
}

func NewOrderRepository(client *firestore.Client, collection string, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		client:     client,
		collection: collection,
		logger:     logger,
	}
}

func (r *OrderRepository) orders() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// ListOrders returns every order, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	iter := r.orders().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return r.collect(iter)
}

// ListOrdersByDay returns the orders created on the given local day,
// bounded midnight to midnight, newest first.
func (r *OrderRepository) ListOrdersByDay(ctx context.Context, day time.Time) ([]domain.Order, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	iter := r.orders().
		Where("createdAt", ">=", start).
		Where("createdAt", "<", end).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.collect(iter)
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	snap, err := r.orders().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	var order domain.Order
	if err := snap.DataTo(&order); err != nil {
		return domain.Order{}, fmt.Errorf("decode order %s: %w", id, err)
	}
	order.ID = snap.Ref.ID
	return order, nil
}

// UpdateStatus overwrites the order's status field and stamps
// updatedAt server-side. No other fields are touched.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, next domain.Status) error {
	_, err := r.orders().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(next)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("update status of order %s: %w", id, err)
	}
	return nil
}

// UpdateItems persists an edit session's result: items and the
// recomputed total, nothing else.
func (r *OrderRepository) UpdateItems(ctx context.Context, id string, items []domain.OrderItem, total float64) error {
	_, err := r.orders().Doc(id).Update(ctx, []firestore.Update{
		{Path: "items", Value: items},
		{Path: "totalAmount", Value: total},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("update items of order %s: %w", id, err)
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	if _, err := r.orders().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// WatchNewOrders opens a snapshot listener on status == "new" and
// streams insertions observed after the listener started. The initial
// snapshot reports every pre-existing document as an addition, so it
// is drained without emitting anything; only later snapshots produce
// changes. The channel closes when ctx is cancelled or the listener
// fails.
func (r *OrderRepository) WatchNewOrders(ctx context.Context) <-chan OrderChange {
	out := make(chan OrderChange)

	go func() {
		defer close(out)

		snaps := r.orders().Where("status", "==", string(domain.StatusNew)).Snapshots(ctx)
		defer snaps.Stop()

		first := true
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					r.logger.Error("new-order listener stopped", zap.Error(err))
				}
				return
			}
			if first {
				first = false
				continue
			}
			for _, change := range snap.Changes {
				if change.Kind != firestore.DocumentAdded {
					continue
				}
				var order domain.Order
				if err := change.Doc.DataTo(&order); err != nil {
					r.logger.Warn("skipping undecodable order document",
						zap.String("order_id", change.Doc.Ref.ID),
						zap.Error(err))
					continue
				}
				order.ID = change.Doc.Ref.ID
				select {
				case out <- OrderChange{Order: order, ObservedAt: snap.ReadTime}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func (r *OrderRepository) collect(iter *firestore.DocumentIterator) ([]domain.Order, error) {
	defer iter.Stop()

	var orders []domain.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return orders, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query orders: %w", err)
		}

		var order domain.Order
		if err := snap.DataTo(&order); err != nil {
			r.logger.Warn("skipping undecodable order document",
				zap.String("order_id", snap.Ref.ID),
				zap.Error(err))
			continue
		}
		order.ID = snap.Ref.ID
		orders = append(orders, order)
	}
}
