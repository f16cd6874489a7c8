package shift

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
)

type DeleteShift struct {
	repo domain.Repository
}

func NewDeleteShift(repo domain.Repository) *DeleteShift {
	return &DeleteShift{repo: repo}
}

func (uc *DeleteShift) Execute(
	ctx context.Context,
	userID uuid.UUID,
	shiftID uuid.UUID,
) error {

	s, err := loadOwned(ctx, uc.repo, shiftID, userID)
	if err != nil {
		return err
	}

	return uc.repo.DeleteShift(ctx, s)
}
