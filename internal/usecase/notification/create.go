package notification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	userdomain "github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type CreateNotificationInput struct {
	UserID uuid.UUID
	Title  string
	Body   string
}

type CreateNotification struct {
	repo  domain.Repository
	users userdomain.Repository
	now   func() time.Time
}

func NewCreateNotification(
	repo domain.Repository,
	users userdomain.Repository,
) *CreateNotification {
	return &CreateNotification{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

func (uc *CreateNotification) Execute(
	ctx context.Context,
	in CreateNotificationInput,
) (*models.Notification, error) {

	if _, err := uc.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
		}
		return nil, err
	}

	now := uc.now()
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}
