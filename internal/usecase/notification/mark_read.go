package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type MarkNotificationRead struct {
	repo domain.Repository
	now  func() time.Time
}

func NewMarkNotificationRead(repo domain.Repository) *MarkNotificationRead {
	return &MarkNotificationRead{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *MarkNotificationRead) Execute(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
) (*models.Notification, error) {

	n, err := loadOwned(ctx, uc.repo, id, userID)
	if err != nil {
		return nil, err
	}

	if n.IsRead {
		return n, nil
	}

	domain.MarkRead(n, uc.now())
	if err := uc.repo.UpdateNotification(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}
