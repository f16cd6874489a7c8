package shift

import (
	"time"

	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

// ValidateRange requires end to be strictly after start.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeRange)
	}
	return nil
}

// Overlaps treats ranges as half-open, so back-to-back shifts do not
// collide.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func CanUpdate(s *models.Shift) error {
	if s.IsApproved {
		return httperr.ErrBusiness(httperr.CodeShiftApproved)
	}
	return nil
}

func Approve(s *models.Shift, now time.Time) error {
	if err := CanUpdate(s); err != nil {
		return err
	}
	s.IsApproved = true
	s.UpdatedAt = now
	return nil
}
