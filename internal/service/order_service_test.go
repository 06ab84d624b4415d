package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
)

type fakeStore struct {
	orders     map[string]domain.Order
	today      []domain.Order
	all        []domain.Order
	listErr    error
	statusSets map[string]domain.Status
	itemSets   map[string][]domain.OrderItem
	deleted    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:     map[string]domain.Order{},
		statusSets: map[string]domain.Status{},
		itemSets:   map[string][]domain.OrderItem{},
	}
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return f.all, f.listErr
}

func (f *fakeStore) ListOrdersByDay(ctx context.Context, day time.Time) ([]domain.Order, error) {
	return f.today, f.listErr
}

func (f *fakeStore) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, errNotFound
	}
	return o, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, next domain.Status) error {
	f.statusSets[id] = next
	return nil
}

func (f *fakeStore) UpdateItems(ctx context.Context, id string, items []domain.OrderItem, total float64) error {
	f.itemSets[id] = items
	return nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

var errNotFound = errors.New("order not found")

type fakePublisher struct {
	statusChanges int
	edits         int
	deletes       int
	err           error
}

func (p *fakePublisher) PublishStatusChanged(ctx context.Context, orderID string, from, to domain.Status, requestID string) error {
	p.statusChanges++
	return p.err
}

func (p *fakePublisher) PublishOrderEdited(ctx context.Context, orderID string, items []domain.OrderItem, total float64, requestID string) error {
	p.edits++
	return p.err
}

func (p *fakePublisher) PublishOrderDeleted(ctx context.Context, orderID string, last domain.Status, requestID string) error {
	p.deletes++
	return p.err
}

func newService(store *fakeStore, pub *fakePublisher) *OrderService {
	return NewOrderService(store, pub, zap.NewNop())
}

func TestChangeStatusLegalEdge(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = domain.Order{ID: "o1", Status: domain.StatusNew}
	pub := &fakePublisher{}
	svc := newService(store, pub)

	err := svc.ChangeStatus(context.Background(), "o1", domain.StatusProcessing, "req-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, store.statusSets["o1"])
	assert.Equal(t, 1, pub.statusChanges)
}

func TestChangeStatusRejectsIllegalEdge(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = domain.Order{ID: "o1", Status: domain.StatusNew}
	svc := newService(store, &fakePublisher{})

	err := svc.ChangeStatus(context.Background(), "o1", domain.StatusPaid, "req-1")

	var illegal domain.ErrIllegalTransition
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, domain.StatusNew, illegal.From)
	assert.Equal(t, domain.StatusPaid, illegal.To)
	// Nothing written, nothing published.
	assert.Empty(t, store.statusSets)
}

func TestChangeStatusRejectsUnknownTarget(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = domain.Order{ID: "o1", Status: domain.StatusNew}
	svc := newService(store, &fakePublisher{})

	err := svc.ChangeStatus(context.Background(), "o1", domain.Status("shipped"), "req-1")

	var illegal domain.ErrIllegalTransition
	require.ErrorAs(t, err, &illegal)
	assert.Empty(t, store.statusSets)
}

func TestChangeStatusPublishFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = domain.Order{ID: "o1", Status: domain.StatusPaid}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newService(store, pub)

	err := svc.ChangeStatus(context.Background(), "o1", domain.StatusArchived, "req-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, store.statusSets["o1"])
}

func TestDeleteAllowedOnlyFromNewAndArchived(t *testing.T) {
	store := newFakeStore()
	store.orders["new"] = domain.Order{ID: "new", Status: domain.StatusNew}
	store.orders["arch"] = domain.Order{ID: "arch", Status: domain.StatusArchived}
	store.orders["proc"] = domain.Order{ID: "proc", Status: domain.StatusProcessing}
	pub := &fakePublisher{}
	svc := newService(store, pub)

	require.NoError(t, svc.Delete(context.Background(), "new", "r"))
	require.NoError(t, svc.Delete(context.Background(), "arch", "r"))
	assert.Equal(t, []string{"new", "arch"}, store.deleted)
	assert.Equal(t, 2, pub.deletes)

	err := svc.Delete(context.Background(), "proc", "r")
	require.ErrorIs(t, err, ErrNotDeletable)
	assert.Len(t, store.deleted, 2)
}

func TestBeginEditNotFoundAbortsSession(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, &fakePublisher{})

	session, _, err := svc.BeginEdit(context.Background(), "gone")

	require.ErrorIs(t, err, errNotFound)
	assert.Nil(t, session)
}

func TestSaveEditPersistsItemsAndTotalOnly(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = domain.Order{
		ID:     "o1",
		Status: domain.StatusNew,
		Items:  []domain.OrderItem{{Name: "Trà Chanh", Price: 10000, Quantity: 1}},
	}
	pub := &fakePublisher{}
	svc := newService(store, pub)

	session, _, err := svc.BeginEdit(context.Background(), "o1")
	require.NoError(t, err)

	session.AddItem("Trà Chanh", 10000)
	session.AddItem("Bim Bim", 6000)

	require.NoError(t, svc.SaveEdit(context.Background(), session, "r"))
	saved := store.itemSets["o1"]
	require.Len(t, saved, 2)
	assert.Equal(t, 2, saved[0].Quantity)
	assert.Equal(t, 1, pub.edits)
}

func TestSaveEditRequiresOpenSession(t *testing.T) {
	svc := newService(newFakeStore(), &fakePublisher{})
	err := svc.SaveEdit(context.Background(), nil, "r")
	require.Error(t, err)
}

func TestLoadDashboardJoinsBothSnapshots(t *testing.T) {
	store := newFakeStore()
	store.today = []domain.Order{{ID: "t1", Status: domain.StatusPaid, TotalAmount: 30000}}
	store.all = []domain.Order{
		{ID: "t1", Status: domain.StatusPaid, TotalAmount: 30000},
		{ID: "a1", Status: domain.StatusNew, TotalAmount: 12000},
		{ID: "bad", Status: domain.Status("shipped"), TotalAmount: 5000},
	}
	svc := newService(store, &fakePublisher{})

	dash, err := svc.LoadDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, dash.Stats.TodayOrders)
	assert.Equal(t, float64(30000), dash.Stats.TodayRevenue)
	assert.Equal(t, 1, dash.Stats.PendingOrders)
	assert.Equal(t, float64(30000), dash.Stats.TotalRevenue)

	// Unknown status shows up in no tab.
	total := 0
	for _, bucket := range dash.Tabs {
		total += len(bucket)
		for _, o := range bucket {
			assert.NotEqual(t, "bad", o.ID)
		}
	}
	assert.Equal(t, 2, total)
}

func TestLoadDashboardFailsWhenEitherLegFails(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("store unreachable")
	svc := newService(store, &fakePublisher{})

	_, err := svc.LoadDashboard(context.Background())
	require.Error(t, err)
}

func TestDayReport(t *testing.T) {
	store := newFakeStore()
	store.today = []domain.Order{
		{Status: domain.StatusPaid, TotalAmount: 45000},
		{Status: domain.StatusNew, TotalAmount: 10000},
	}
	svc := newService(store, &fakePublisher{})

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	report, err := svc.DayReport(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", report.Date)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, float64(45000), report.Revenue)
}
