package notification

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
)

type DeleteNotification struct {
	repo domain.Repository
}

func NewDeleteNotification(repo domain.Repository) *DeleteNotification {
	return &DeleteNotification{repo: repo}
}

func (uc *DeleteNotification) Execute(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
) error {

	n, err := loadOwned(ctx, uc.repo, id, userID)
	if err != nil {
		return err
	}

	return uc.repo.DeleteNotification(ctx, n)
}

type DeleteAllNotifications struct {
	repo domain.Repository
}

func NewDeleteAllNotifications(repo domain.Repository) *DeleteAllNotifications {
	return &DeleteAllNotifications{repo: repo}
}

// Execute returns how many notifications were removed.
func (uc *DeleteAllNotifications) Execute(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	return uc.repo.DeleteAllForUser(ctx, userID)
}
