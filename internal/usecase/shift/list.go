package shift

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type ListShifts struct {
	repo domain.Repository
}

func NewListShifts(repo domain.Repository) *ListShifts {
	return &ListShifts{repo: repo}
}

func (uc *ListShifts) Execute(
	ctx context.Context,
	userID uuid.UUID,
	page dto.Page,
) ([]models.Shift, int64, error) {
	return uc.repo.ListShiftsForUser(ctx, userID, page)
}
