package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type ShiftGormRepository struct {
	db *gorm.DB
}

func NewShiftGormRepository(db *gorm.DB) *ShiftGormRepository {
	return &ShiftGormRepository{db: db}
}

func (r *ShiftGormRepository) CreateShift(
	ctx context.Context,
	s *models.Shift,
) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShiftGormRepository) GetShift(
	ctx context.Context,
	shiftID uuid.UUID,
) (*models.Shift, error) {

	var s models.Shift
	if err := r.db.WithContext(ctx).
		Where("id = ?", shiftID).
		First(&s).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &s, nil
}

func (r *ShiftGormRepository) GetShiftForUser(
	ctx context.Context,
	shiftID uuid.UUID,
	userID uuid.UUID,
) (*models.Shift, error) {

	var s models.Shift
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", shiftID, userID).
		First(&s).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &s, nil
}

func (r *ShiftGormRepository) ListShiftsForUser(
	ctx context.Context,
	userID uuid.UUID,
	page dto.Page,
) ([]models.Shift, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shifts []models.Shift
	if err := q.
		Order("start_time ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *ShiftGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) error {

	var count int64
	if err := conflictQuery(r.db.WithContext(ctx), userID, start, end, excludeID).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeShiftTimeConflict)
	}

	return nil
}

// conflictQuery selects the user's shifts intersecting the half-open
// range [start, end).
func conflictQuery(
	db *gorm.DB,
	userID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) *gorm.DB {

	q := db.Model(&models.Shift{}).
		Where(
			"user_id = ? AND start_time < ? AND end_time > ?",
			userID,
			end,
			start,
		)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	return q
}

func (r *ShiftGormRepository) UpdatePendingShift(
	ctx context.Context,
	s *models.Shift,
) error {

	res := pendingShift(r.db.WithContext(ctx), s.ID).
		Updates(map[string]any{
			"name":       s.Name,
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
			"updated_at": s.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeShiftApproved)
	}
	return nil
}

func (r *ShiftGormRepository) ApproveShift(
	ctx context.Context,
	shiftID uuid.UUID,
	at time.Time,
) error {

	res := pendingShift(r.db.WithContext(ctx), shiftID).
		Updates(map[string]any{
			"is_approved": true,
			"updated_at":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeShiftApproved)
	}
	return nil
}

func pendingShift(db *gorm.DB, shiftID uuid.UUID) *gorm.DB {
	return db.Model(&models.Shift{}).
		Where("id = ? AND is_approved = ?", shiftID, false)
}

func (r *ShiftGormRepository) DeleteShift(
	ctx context.Context,
	s *models.Shift,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ShiftGormRepository)(nil)
