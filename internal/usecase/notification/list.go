package notification

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type ListNotifications struct {
	repo domain.Repository
}

func NewListNotifications(repo domain.Repository) *ListNotifications {
	return &ListNotifications{repo: repo}
}

func (uc *ListNotifications) Execute(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ListFilter,
) ([]models.Notification, int64, error) {
	return uc.repo.ListNotificationsForUser(ctx, userID, filter)
}
