package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *OrderGormRepository) GetMaster(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var master models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleMaster).
		First(&master).Error; err != nil {
		return nil, err
	}
	return &master, nil
}

func (r *OrderGormRepository) GetService(
	ctx context.Context,
	masterID uint,
	serviceID uint,
) (*models.MasterService, error) {

	var service models.MasterService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND master_id = ?", serviceID, masterID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *OrderGormRepository) GetDesign(
	ctx context.Context,
	designID uint,
) (*models.Design, error) {

	var d models.Design
	if err := r.db.WithContext(ctx).
		First(&d, designID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OrderGormRepository) GetServiceDesignOption(
	ctx context.Context,
	serviceID uint,
	designID uint,
) (*models.ServiceDesignOption, error) {

	var opt models.ServiceDesignOption
	err := r.db.WithContext(ctx).
		Where("master_service_id = ? AND design_id = ?", serviceID, designID).
		First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// --------------------------------------------------
// Order (create / read)
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	// The snapshot row rides along via the association.
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	id uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Snapshot").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) GetOrderForClient(
	ctx context.Context,
	orderID uint,
	clientID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Snapshot").
		Where("id = ? AND client_id = ?", orderID, clientID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) GetOrderForMaster(
	ctx context.Context,
	orderID uint,
	masterID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Snapshot").
		Where("id = ? AND master_id = ?", orderID, masterID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// --------------------------------------------------
// Order (state change)
// --------------------------------------------------

func (r *OrderGormRepository) UpdateOrderFrom(
	ctx context.Context,
	o *models.Order,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Updates(map[string]any{
			"status":              o.Status,
			"price":               o.Price,
			"proposed_time":       o.ProposedTime,
			"confirmed_time":      o.ConfirmedTime,
			"slot_id":             o.SlotID,
			"master_notes":        o.MasterNotes,
			"client_notes":        o.ClientNotes,
			"master_responded_at": o.MasterRespondedAt,
			"completed_at":        o.CompletedAt,
			"completed_by":        o.CompletedBy,
			"rating":              o.Rating,
			"cancelled_at":        o.CancelledAt,
			"cancelled_by":        o.CancelledBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

func (r *OrderGormRepository) UpdateRating(
	ctx context.Context,
	orderID uint,
	rating int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where(
			"id = ? AND status = ? AND rating IS NULL",
			orderID,
			string(domain.StatusCompleted),
		).
		Update("rating", rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyRated
	}
	return nil
}

// --------------------------------------------------
// Sweep / listing
// --------------------------------------------------

func (r *OrderGormRepository) ListExpiredPending(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.Order, error) {

	var orders []models.Order
	q := r.db.WithContext(ctx).
		Where(
			"status = ? AND respond_by <= ?",
			string(domain.StatusPending),
			now,
		).
		Order("respond_by ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
	from time.Time,
	to time.Time,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Snapshot").
		Preload("MasterService").
		Where(
			"client_id = ? AND requested_time >= ? AND requested_time < ?",
			clientID, from, to,
		).
		Order("requested_time ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListByMaster(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Snapshot").
		Preload("MasterService").
		Where(
			"master_id = ? AND requested_time >= ? AND requested_time < ?",
			masterID, from, to,
		).
		Order("requested_time ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// NotFound reports whether the error is a plain record miss.
func NotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
