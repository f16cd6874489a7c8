package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type memStore struct {
	mu    sync.Mutex
	items []models.Notification
	fail  bool
}

func (s *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.items = append(s.items, *n)
	return nil
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(store, zap.NewNop())

	userID := uuid.New()
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{UserID: userID, Title: "Shift approved", Body: "ok"})
	}
	d.Close()

	assert.Len(t, store.items, 10)
	for _, n := range store.items {
		assert.Equal(t, userID, n.UserID)
		assert.Equal(t, "Shift approved", n.Title)
	}
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(store, zap.NewNop())
	d.Close()
	d.Close()

	d.Dispatch(Event{UserID: uuid.New(), Title: "late"})
	assert.Empty(t, store.items)
}

func TestStoreFailureDoesNotStopWorker(t *testing.T) {
	store := &memStore{fail: true}
	d := NewDispatcher(store, zap.NewNop())
	d.Dispatch(Event{UserID: uuid.New(), Title: "x"})
	d.Close()

	assert.Empty(t, store.items)
}
