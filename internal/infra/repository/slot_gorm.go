package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotGormRepository) GetSlotForOwner(
	ctx context.Context,
	slotID uint,
	masterID uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND master_id = ?", slotID, masterID).
		First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// --------------------------------------------------
// Create (overlap guard)
// --------------------------------------------------

func (r *SlotGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.TimeSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Postgres refuses FOR UPDATE on aggregates, so the conflict
		// check selects the rows themselves and locks them.
		var conflicts []models.TimeSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"master_id = ? AND start_time < ? AND end_time > ?",
				slot.MasterID,
				slot.EndTime,
				slot.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return &domain.OverlapError{
				MasterID: slot.MasterID,
				Start:    slot.StartTime,
				End:      slot.EndTime,
			}
		}

		return tx.Create(slot).Error
	})
}

// --------------------------------------------------
// Reserve / release
// --------------------------------------------------

func (r *SlotGormRepository) FindCoveringAvailable(
	ctx context.Context,
	masterID uint,
	start time.Time,
	end time.Time,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	err := r.db.WithContext(ctx).
		Where(
			"master_id = ? AND status = ? AND start_time <= ? AND end_time >= ?",
			masterID,
			string(domain.StatusAvailable),
			start,
			end,
		).
		Order("start_time ASC").
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateSlotStatus is the atomic reserve/release primitive: the WHERE on
// the current status guarantees two racing reservations cannot both win.
func (r *SlotGormRepository) UpdateSlotStatus(
	ctx context.Context,
	slotID uint,
	from domain.Status,
	to domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("id = ? AND status = ?", slotID, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var slot models.TimeSlot
		status := domain.Status("")
		if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err == nil {
			status = domain.Status(slot.Status)
		}
		return &domain.SlotUnavailableError{SlotID: slotID, Status: status}
	}
	return nil
}

// BlockSlot withdraws an available slot, writing the reason in the same
// guarded update so it cannot stomp a reservation that won in between.
func (r *SlotGormRepository) BlockSlot(
	ctx context.Context,
	slotID uint,
	notes string,
) error {

	updates := map[string]any{"status": string(domain.StatusBlocked)}
	if notes != "" {
		updates["notes"] = notes
	}

	res := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("id = ? AND status = ?", slotID, string(domain.StatusAvailable)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var slot models.TimeSlot
		status := domain.Status("")
		if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err == nil {
			status = domain.Status(slot.Status)
		}
		return &domain.SlotUnavailableError{SlotID: slotID, Status: status}
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *SlotGormRepository) ListRange(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where(
			"master_id = ? AND start_time >= ? AND start_time < ?",
			masterID, from, to,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) ListAvailableRange(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where(
			"master_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			masterID, string(domain.StatusAvailable), from, to,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
