package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	// FindByEmail and FindByID return ErrNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, u *models.User) error
}
