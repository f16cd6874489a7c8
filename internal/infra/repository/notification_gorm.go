package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) GetNotification(
	ctx context.Context,
	id uuid.UUID,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&n).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &n, nil
}

func (r *NotificationGormRepository) ListNotificationsForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Notification, int64, error) {

	q := notificationsQuery(r.db.WithContext(ctx), userID, filter.UnreadOnly).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(filter.Page.Size).
		Offset(filter.Page.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func notificationsQuery(db *gorm.DB, userID uuid.UUID, unreadOnly bool) *gorm.DB {
	q := db.Model(&models.Notification{}).
		Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	return q
}

func (r *NotificationGormRepository) UpdateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NotificationGormRepository) DeleteNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Delete(n).Error
}

func (r *NotificationGormRepository) DeleteAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

var _ domain.Repository = (*NotificationGormRepository)(nil)
