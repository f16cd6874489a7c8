package shift

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/shift"
	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
	"github.com/BruksfildServices01/crime-detection/internal/notify"
)

type memRepo struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]models.Shift
}

func newMemRepo() *memRepo {
	return &memRepo{shifts: map[uuid.UUID]models.Shift{}}
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) CreateShift(_ context.Context, s *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts[s.ID] = *s
	return nil
}

func (r *memRepo) GetShift(_ context.Context, id uuid.UUID) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memRepo) GetShiftForUser(ctx context.Context, id, userID uuid.UUID) (*models.Shift, error) {
	s, err := r.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memRepo) ListShiftsForUser(_ context.Context, userID uuid.UUID, page dto.Page) ([]models.Shift, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Shift
	for _, s := range r.shifts {
		if s.UserID == userID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.Before(all[j].StartTime) })

	total := int64(len(all))
	from := page.Offset()
	if from > len(all) {
		from = len(all)
	}
	to := from + page.Size
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], total, nil
}

func (r *memRepo) AssertNoTimeConflict(_ context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.UserID != userID {
			continue
		}
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, s.StartTime, s.EndTime) {
			return httperr.ErrBusiness(httperr.CodeShiftTimeConflict)
		}
	}
	return nil
}

func (r *memRepo) UpdatePendingShift(_ context.Context, s *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.shifts[s.ID]
	if !ok || cur.IsApproved {
		return httperr.ErrBusiness(httperr.CodeShiftApproved)
	}
	cur.Name = s.Name
	cur.StartTime = s.StartTime
	cur.EndTime = s.EndTime
	cur.UpdatedAt = s.UpdatedAt
	r.shifts[s.ID] = cur
	return nil
}

func (r *memRepo) ApproveShift(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.shifts[id]
	if !ok || cur.IsApproved {
		return httperr.ErrBusiness(httperr.CodeShiftApproved)
	}
	cur.IsApproved = true
	cur.UpdatedAt = at
	r.shifts[id] = cur
	return nil
}

func (r *memRepo) DeleteShift(_ context.Context, s *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shifts, s.ID)
	return nil
}

type recordingNotifier struct {
	events []notify.Event
}

func (n *recordingNotifier) Dispatch(ev notify.Event) {
	n.events = append(n.events, ev)
}

// interleavingRepo runs afterLoad between a use case reading a shift and
// writing it back.
type interleavingRepo struct {
	*memRepo
	afterLoad func()
}

func (r *interleavingRepo) GetShift(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	s, err := r.memRepo.GetShift(ctx, id)
	r.fire()
	return s, err
}

func (r *interleavingRepo) GetShiftForUser(ctx context.Context, id, userID uuid.UUID) (*models.Shift, error) {
	s, err := r.memRepo.GetShiftForUser(ctx, id, userID)
	r.fire()
	return s, err
}

func (r *interleavingRepo) fire() {
	if r.afterLoad != nil {
		f := r.afterLoad
		r.afterLoad = nil
		f()
	}
}
