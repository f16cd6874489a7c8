package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type GetNotification struct {
	repo domain.Repository
}

func NewGetNotification(repo domain.Repository) *GetNotification {
	return &GetNotification{repo: repo}
}

func (uc *GetNotification) Execute(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
) (*models.Notification, error) {
	return loadOwned(ctx, uc.repo, id, userID)
}

func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Notification, error) {
	n, err := repo.GetNotification(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotificationNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.AssertOwner(n, userID); err != nil {
		return nil, err
	}
	return n, nil
}
