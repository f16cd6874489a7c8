package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

var ErrNotFound = errors.New("notification not found")

type ListFilter struct {
	UnreadOnly bool
	Page       dto.Page
}

type Repository interface {
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	// GetNotification returns ErrNotFound when no row matches.
	GetNotification(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Notification, error)

	ListNotificationsForUser(
		ctx context.Context,
		userID uuid.UUID,
		filter ListFilter,
	) ([]models.Notification, int64, error)

	UpdateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	DeleteNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	DeleteAllForUser(
		ctx context.Context,
		userID uuid.UUID,
	) (int64, error)
}
