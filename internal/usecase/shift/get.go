package shift

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type GetShift struct {
	repo domain.Repository
}

func NewGetShift(repo domain.Repository) *GetShift {
	return &GetShift{repo: repo}
}

func (uc *GetShift) Execute(
	ctx context.Context,
	userID uuid.UUID,
	shiftID uuid.UUID,
) (*models.Shift, error) {
	return loadOwned(ctx, uc.repo, shiftID, userID)
}

// loadOwned reports shifts of other users as not found.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	shiftID uuid.UUID,
	userID uuid.UUID,
) (*models.Shift, error) {
	s, err := repo.GetShiftForUser(ctx, shiftID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeShiftNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
