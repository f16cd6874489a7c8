package shift

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

// UpdateShiftInput carries a partial update; nil fields are left as is.
type UpdateShiftInput struct {
	UserID    uuid.UUID
	ShiftID   uuid.UUID
	Name      *string
	StartTime *time.Time
	EndTime   *time.Time
}

type UpdateShift struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUpdateShift(repo domain.Repository) *UpdateShift {
	return &UpdateShift{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *UpdateShift) Execute(
	ctx context.Context,
	in UpdateShiftInput,
) (*models.Shift, error) {

	s, err := loadOwned(ctx, uc.repo, in.ShiftID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanUpdate(s); err != nil {
		return nil, err
	}

	start, end := s.StartTime, s.EndTime
	if in.StartTime != nil {
		start = in.StartTime.UTC()
	}
	if in.EndTime != nil {
		end = in.EndTime.UTC()
	}

	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}

	if in.StartTime != nil || in.EndTime != nil {
		if err := uc.repo.AssertNoTimeConflict(
			ctx,
			s.UserID,
			start,
			end,
			&s.ID,
		); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	s.StartTime = start
	s.EndTime = end
	s.UpdatedAt = uc.now()

	// a concurrent approval makes this fail with shift_already_approved
	if err := uc.repo.UpdatePendingShift(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}
