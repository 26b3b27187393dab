package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	domsched "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
)

// The fakes honor the storage contract: record misses surface as
// gorm.ErrRecordNotFound, same as the real repository.
var errNotFound = gorm.ErrRecordNotFound

// ======================================================
// In-memory order repository
// ======================================================

type fakeRepo struct {
	mu       sync.Mutex
	masters  map[uint]*models.User
	services map[uint]*models.MasterService
	designs  map[uint]*models.Design
	options  []*models.ServiceDesignOption
	orders   map[uint]*models.Order
	nextID   uint

	// injected infrastructure failures
	masterErrs map[uint]error
	optionErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		masters:  make(map[uint]*models.User),
		services: make(map[uint]*models.MasterService),
		designs:  make(map[uint]*models.Design),
		orders:   make(map[uint]*models.Order),
		nextID:   1,
	}
}

func (r *fakeRepo) GetMaster(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.masterErrs[id]; err != nil {
		return nil, err
	}
	m, ok := r.masters[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) GetService(ctx context.Context, masterID, serviceID uint) (*models.MasterService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.MasterID != masterID {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetDesign(ctx context.Context, designID uint) (*models.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[designID]
	if !ok {
		return nil, errNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeRepo) GetServiceDesignOption(ctx context.Context, serviceID, designID uint) (*models.ServiceDesignOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.optionErr != nil {
		return nil, r.optionErr
	}
	for _, o := range r.options {
		if o.MasterServiceID == serviceID && o.DesignID == designID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) GetOrderForClient(ctx context.Context, orderID, clientID uint) (*models.Order, error) {
	o, err := r.GetOrder(ctx, orderID)
	if err != nil || o.ClientID != clientID {
		return nil, errNotFound
	}
	return o, nil
}

func (r *fakeRepo) GetOrderForMaster(ctx context.Context, orderID, masterID uint) (*models.Order, error) {
	o, err := r.GetOrder(ctx, orderID)
	if err != nil || o.MasterID != masterID {
		return nil, errNotFound
	}
	return o, nil
}

func (r *fakeRepo) UpdateOrderFrom(ctx context.Context, o *models.Order, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok || stored.Status != string(from) {
		return domain.ErrConcurrentUpdate
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateRating(ctx context.Context, orderID uint, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.Status != string(domain.StatusCompleted) || o.Rating != nil {
		return domain.ErrAlreadyRated
	}
	o.Rating = &rating
	return nil
}

func (r *fakeRepo) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.Status == string(domain.StatusPending) && now.After(o.RespondBy) {
			out = append(out, *o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByClient(ctx context.Context, clientID uint, from, to time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByMaster(ctx context.Context, masterID uint, from, to time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.MasterID == masterID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeRepo) stored(t *testing.T, id uint) *models.Order {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		t.Fatalf("order %d missing", id)
	}
	cp := *o
	return &cp
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// In-memory slot repository
// ======================================================

type fakeSlots struct {
	mu    sync.Mutex
	slots map[uint]*models.TimeSlot
}

func newFakeSlots(slots ...*models.TimeSlot) *fakeSlots {
	r := &fakeSlots{slots: make(map[uint]*models.TimeSlot)}
	for _, s := range slots {
		cp := *s
		r.slots[s.ID] = &cp
	}
	return r
}

func (r *fakeSlots) GetSlot(ctx context.Context, id uint) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlots) GetSlotForOwner(ctx context.Context, slotID, masterID uint) (*models.TimeSlot, error) {
	s, err := r.GetSlot(ctx, slotID)
	if err != nil || s.MasterID != masterID {
		return nil, errNotFound
	}
	return s, nil
}

func (r *fakeSlots) CreateSlot(ctx context.Context, slot *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == 0 {
		slot.ID = uint(len(r.slots) + 1)
	}
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlots) FindCoveringAvailable(ctx context.Context, masterID uint, start, end time.Time) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.MasterID == masterID &&
			s.Status == string(domsched.StatusAvailable) &&
			domsched.Covers(s, start, end) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSlots) UpdateSlotStatus(ctx context.Context, slotID uint, from, to domsched.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return &domsched.SlotUnavailableError{SlotID: slotID}
	}
	if s.Status != string(from) {
		return &domsched.SlotUnavailableError{SlotID: slotID, Status: domsched.Status(s.Status)}
	}
	s.Status = string(to)
	return nil
}

func (r *fakeSlots) BlockSlot(ctx context.Context, slotID uint, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.Status != string(domsched.StatusAvailable) {
		status := domsched.Status("")
		if ok {
			status = domsched.Status(s.Status)
		}
		return &domsched.SlotUnavailableError{SlotID: slotID, Status: status}
	}
	s.Status = string(domsched.StatusBlocked)
	if notes != "" {
		s.Notes = notes
	}
	return nil
}

func (r *fakeSlots) ListRange(ctx context.Context, masterID uint, from, to time.Time) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range r.slots {
		if s.MasterID == masterID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlots) ListAvailableRange(ctx context.Context, masterID uint, from, to time.Time) ([]models.TimeSlot, error) {
	all, _ := r.ListRange(ctx, masterID, from, to)
	var out []models.TimeSlot
	for _, s := range all {
		if s.Status == string(domsched.StatusAvailable) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlots) status(t *testing.T, id uint) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		t.Fatalf("slot %d missing", id)
	}
	return s.Status
}

var _ domsched.Repository = (*fakeSlots)(nil)

// ======================================================
// Test environment
// ======================================================

type nopSink struct{}

func (nopSink) Log(*uint, string, string, string, *uint, any) error { return nil }

// clock is the frozen wall time the environment's usecases observe.
var clock = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	repo  *fakeRepo
	slots *fakeSlots
	coord *scheduler.Coordinator

	create   *CreateOrder
	master   *MasterRespond
	client   *ClientRespond
	complete *CompleteOrder
	rate     *RateOrder
	actions  *AllowedActions
}

func newTestEnv(t *testing.T, slots ...*models.TimeSlot) *testEnv {
	t.Helper()

	repo := newFakeRepo()
	slotRepo := newFakeSlots(slots...)
	coord := scheduler.NewCoordinator(
		slotRepo,
		scheduler.NewMemoryLocker(200*time.Millisecond),
		zap.NewNop(),
	)
	dispatcher := audit.NewDispatcher(nopSink{}, zap.NewNop())

	env := &testEnv{
		repo:     repo,
		slots:    slotRepo,
		coord:    coord,
		create:   NewCreateOrder(repo, coord, dispatcher, 4*time.Hour),
		master:   NewMasterRespond(repo, coord, dispatcher),
		client:   NewClientRespond(repo, coord, dispatcher),
		complete: NewCompleteOrder(repo, coord, dispatcher, 24*time.Hour),
		rate:     NewRateOrder(repo, dispatcher),
		actions:  NewAllowedActions(repo, 24*time.Hour),
	}

	at := func() time.Time { return clock }
	env.create.now = at
	env.master.now = at
	env.client.now = at
	env.actions.now = at
	env.complete.now = at

	return env
}

func (e *testEnv) at(t time.Time) {
	at := func() time.Time { return t }
	e.create.now = at
	e.master.now = at
	e.client.now = at
	e.actions.now = at
	e.complete.now = at
}

// seedCatalog installs a master in UTC with one 90-minute service.
func (e *testEnv) seedCatalog() {
	e.repo.masters[1] = &models.User{
		ID:                1,
		Name:              "Vera",
		Role:              models.RoleMaster,
		Timezone:          "UTC",
		MinAdvanceMinutes: 120,
	}
	e.repo.services[10] = &models.MasterService{
		ID:          10,
		MasterID:    1,
		Title:       "Gel manicure",
		Price:       90,
		DurationMin: 90,
		Active:      true,
	}
}

func utcSlot(id uint, day, startH, endH int) *models.TimeSlot {
	return &models.TimeSlot{
		ID:        id,
		MasterID:  1,
		Date:      time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(2026, 3, day, startH, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, day, endH, 0, 0, 0, time.UTC),
		Status:    "available",
	}
}

var clientActor = domain.Actor{ID: 100, Role: domain.RoleClient}
var masterActor = domain.Actor{ID: 1, Role: domain.RoleMaster}
