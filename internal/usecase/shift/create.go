package shift

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type CreateShiftInput struct {
	UserID    uuid.UUID
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

type CreateShift struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCreateShift(repo domain.Repository) *CreateShift {
	return &CreateShift{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *CreateShift) Execute(
	ctx context.Context,
	in CreateShiftInput,
) (*models.Shift, error) {

	if err := domain.ValidateRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.UserID,
		in.StartTime,
		in.EndTime,
		nil,
	); err != nil {
		return nil, err
	}

	now := uc.now()
	s := &models.Shift{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateShift(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}
