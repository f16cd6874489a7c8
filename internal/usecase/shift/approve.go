package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
	"github.com/BruksfildServices01/crime-detection/internal/notify"
	"github.com/BruksfildServices01/crime-detection/internal/timezone"
)

type Notifier interface {
	Dispatch(ev notify.Event)
}

// ApproveShift is an admin action; any user's shift can be approved.
type ApproveShift struct {
	repo     domain.Repository
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

// NewApproveShift renders shift times in the notification using tz.
func NewApproveShift(
	repo domain.Repository,
	notifier Notifier,
	tz string,
) *ApproveShift {
	return &ApproveShift{
		repo:     repo,
		notifier: notifier,
		loc:      timezone.Location(tz),
		now:      time.Now,
	}
}

func (uc *ApproveShift) Execute(
	ctx context.Context,
	shiftID uuid.UUID,
) (*models.Shift, error) {

	s, err := uc.repo.GetShift(ctx, shiftID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeShiftNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.Approve(s, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.ApproveShift(ctx, s.ID, s.UpdatedAt); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		UserID: s.UserID,
		Title:  "Shift approved",
		Body:   approvalBody(s, uc.loc),
	})

	return s, nil
}

const displayLayout = "2006-01-02 15:04 MST"

func approvalBody(s *models.Shift, loc *time.Location) string {
	name := s.Name
	if name == "" {
		name = "Your shift"
	}
	return fmt.Sprintf(
		"%s from %s to %s has been approved.",
		name,
		s.StartTime.In(loc).Format(displayLayout),
		s.EndTime.In(loc).Format(displayLayout),
	)
}
