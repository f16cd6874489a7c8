package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

// AssertOwner hides other users' notifications behind not-found.
func AssertOwner(n *models.Notification, userID uuid.UUID) error {
	if n.UserID != userID {
		return httperr.ErrBusiness(httperr.CodeNotificationNotFound)
	}
	return nil
}

// MarkRead is idempotent; ReadAt keeps the first read time.
func MarkRead(n *models.Notification, now time.Time) {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
