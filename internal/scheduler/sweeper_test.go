package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// fakeOrderStore implements just enough of order.Repository for the sweep
// path, with the same guarded-update semantics as the gorm implementation.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[uint]*models.Order

	// staleList, when set, is served by the next ListExpiredPending call
	// to simulate a read that raced a concurrent transition.
	staleList []models.Order
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: make(map[uint]*models.Order)}
	for _, o := range orders {
		cp := *o
		s.orders[o.ID] = &cp
	}
	return s
}

func (s *fakeOrderStore) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleList != nil {
		stale := s.staleList
		s.staleList = nil
		return stale, nil
	}
	var out []models.Order
	for _, o := range s.orders {
		if o.Status == string(order.StatusPending) && now.After(o.RespondBy) {
			out = append(out, *o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateOrderFrom(ctx context.Context, o *models.Order, from order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID]
	if !ok || stored.Status != string(from) {
		return order.ErrConcurrentUpdate
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeOrderStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOrderStore) status(t *testing.T, id uint) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status
}

// The sweep never touches the rest of the interface.

func (s *fakeOrderStore) GetMaster(context.Context, uint) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) GetService(context.Context, uint, uint) (*models.MasterService, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) GetDesign(context.Context, uint) (*models.Design, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) GetServiceDesignOption(context.Context, uint, uint) (*models.ServiceDesignOption, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) CreateOrder(context.Context, *models.Order) error {
	return errors.New("not implemented")
}

func (s *fakeOrderStore) GetOrderForClient(context.Context, uint, uint) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) GetOrderForMaster(context.Context, uint, uint) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) UpdateRating(context.Context, uint, int) error {
	return errors.New("not implemented")
}

func (s *fakeOrderStore) ListByClient(context.Context, uint, time.Time, time.Time) ([]models.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeOrderStore) ListByMaster(context.Context, uint, time.Time, time.Time) ([]models.Order, error) {
	return nil, errors.New("not implemented")
}

var _ order.Repository = (*fakeOrderStore)(nil)

// ----- tests -----

func TestSweeper_ExpiresOverdueOrders(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slotID := uint(1)

	overdue := &models.Order{
		ID:        1,
		Status:    string(order.StatusPending),
		RespondBy: now.Add(-time.Minute),
		SlotID:    &slotID,
	}
	fresh := &models.Order{
		ID:        2,
		Status:    string(order.StatusPending),
		RespondBy: now.Add(time.Hour),
	}
	confirmed := &models.Order{
		ID:        3,
		Status:    string(order.StatusConfirmed),
		RespondBy: now.Add(-time.Hour),
	}

	store := newFakeOrderStore(overdue, fresh, confirmed)

	held := openSlot(1, 5, 10, 12)
	held.Status = string(schedule.StatusBooked)
	slots := newFakeSlotRepo(held)
	coord := testCoordinator(slots)

	sweeper := NewSweeper(store, coord, time.Minute, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	if swept := sweeper.SweepOnce(context.Background()); swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	if got := store.status(t, 1); got != string(order.StatusTimeout) {
		t.Fatalf("overdue order status = %s, want timeout", got)
	}
	if got := store.status(t, 2); got != string(order.StatusPending) {
		t.Fatalf("fresh order status = %s, want pending", got)
	}
	if got := store.status(t, 3); got != string(order.StatusConfirmed) {
		t.Fatalf("confirmed order status = %s, want confirmed", got)
	}

	// The held slot goes back to the pool.
	if got := slots.status(t, 1); got != string(schedule.StatusAvailable) {
		t.Fatalf("slot status = %s, want available", got)
	}
}

func TestSweeper_SecondPassIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeOrderStore(&models.Order{
		ID:        1,
		Status:    string(order.StatusPending),
		RespondBy: now.Add(-time.Minute),
	})
	coord := testCoordinator(newFakeSlotRepo())

	sweeper := NewSweeper(store, coord, time.Minute, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	if swept := sweeper.SweepOnce(context.Background()); swept != 1 {
		t.Fatalf("first sweep = %d, want 1", swept)
	}
	if swept := sweeper.SweepOnce(context.Background()); swept != 0 {
		t.Fatalf("second sweep = %d, want 0", swept)
	}
}

func TestSweeper_LosesRaceGracefully(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeOrderStore(&models.Order{
		ID:        1,
		Status:    string(order.StatusConfirmed),
		RespondBy: now.Add(-time.Minute),
	})
	coord := testCoordinator(newFakeSlotRepo())

	// The list read raced a master confirm: it still reports the order as
	// pending while the store already moved on.
	store.staleList = []models.Order{{
		ID:        1,
		Status:    string(order.StatusPending),
		RespondBy: now.Add(-time.Minute),
	}}

	sweeper := NewSweeper(store, coord, time.Minute, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	if swept := sweeper.SweepOnce(context.Background()); swept != 0 {
		t.Fatalf("swept = %d, want 0 after losing the race", swept)
	}
	if got := store.status(t, 1); got != string(order.StatusConfirmed) {
		t.Fatalf("order status = %s, want confirmed preserved", got)
	}
}
