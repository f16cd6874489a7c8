package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type UpdateProfileInput struct {
	UserID    uuid.UUID
	Firstname *string
	Lastname  *string
	Phone     *string
}

type UpdateProfile struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	in UpdateProfileInput,
) (*models.User, error) {

	u, err := uc.repo.FindByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	if in.Firstname != nil {
		u.Firstname = strings.TrimSpace(*in.Firstname)
	}
	if in.Lastname != nil {
		u.Lastname = strings.TrimSpace(*in.Lastname)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	u.UpdatedAt = uc.now()

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
