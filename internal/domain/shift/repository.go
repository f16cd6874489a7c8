package shift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

var ErrNotFound = errors.New("shift not found")

type Repository interface {
	CreateShift(
		ctx context.Context,
		s *models.Shift,
	) error

	// GetShift returns ErrNotFound when no row matches.
	GetShift(
		ctx context.Context,
		shiftID uuid.UUID,
	) (*models.Shift, error)

	GetShiftForUser(
		ctx context.Context,
		shiftID uuid.UUID,
		userID uuid.UUID,
	) (*models.Shift, error)

	ListShiftsForUser(
		ctx context.Context,
		userID uuid.UUID,
		page dto.Page,
	) ([]models.Shift, int64, error)

	// AssertNoTimeConflict fails with shift_time_conflict when another
	// shift of the user intersects [start, end). excludeID skips the
	// shift being edited.
	AssertNoTimeConflict(
		ctx context.Context,
		userID uuid.UUID,
		start time.Time,
		end time.Time,
		excludeID *uuid.UUID,
	) error

	// UpdatePendingShift writes name, times and updated_at only while
	// the stored shift is still unapproved; otherwise it fails with
	// shift_already_approved and leaves the row untouched.
	UpdatePendingShift(
		ctx context.Context,
		s *models.Shift,
	) error

	// ApproveShift flips is_approved on a pending shift without
	// touching its other columns.
	ApproveShift(
		ctx context.Context,
		shiftID uuid.UUID,
		at time.Time,
	) error

	DeleteShift(
		ctx context.Context,
		s *models.Shift,
	) error
}
