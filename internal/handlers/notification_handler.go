package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/notification"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/httpresp"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	"github.com/BruksfildServices01/crime-detection/internal/models"
	ucNotification "github.com/BruksfildServices01/crime-detection/internal/usecase/notification"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	create    *ucNotification.CreateNotification
	list      *ucNotification.ListNotifications
	get       *ucNotification.GetNotification
	markRead  *ucNotification.MarkNotificationRead
	delete    *ucNotification.DeleteNotification
	deleteAll *ucNotification.DeleteAllNotifications
}

func NewNotificationHandler(
	create *ucNotification.CreateNotification,
	list *ucNotification.ListNotifications,
	get *ucNotification.GetNotification,
	markRead *ucNotification.MarkNotificationRead,
	remove *ucNotification.DeleteNotification,
	deleteAll *ucNotification.DeleteAllNotifications,
) *NotificationHandler {
	return &NotificationHandler{
		create:    create,
		list:      list,
		get:       get,
		markRead:  markRead,
		delete:    remove,
		deleteAll: deleteAll,
	}
}

type CreateNotificationRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Title  string    `json:"title" binding:"required,max=255"`
	Body   string    `json:"body"`
}

type deletedCount struct {
	Deleted int64 `json:"deleted"`
}

// ======================================================
// OWNER
// ======================================================

func (h *NotificationHandler) List(c *gin.Context) {
	page := pageQuery(c)
	filter := domain.ListFilter{
		UnreadOnly: c.Query("unread") == "true",
		Page:       page,
	}

	items, total, err := h.list.Execute(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List[models.Notification](c, items, total, page.Page, page.Size)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeNotificationNotFound)
	if !ok {
		return
	}

	n, err := h.get.Execute(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, n)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeNotificationNotFound)
	if !ok {
		return
	}

	n, err := h.markRead.Execute(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, n, httpresp.MsgNotificationRead)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeNotificationNotFound)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, nil, httpresp.MsgDeleted)
}

func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	n, err := h.deleteAll.Execute(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, deletedCount{Deleted: n}, httpresp.MsgDeleted)
}

// ======================================================
// ADMIN
// ======================================================

func (h *NotificationHandler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.create.Execute(c.Request.Context(), ucNotification.CreateNotificationInput{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, n, httpresp.MsgCreated)
}
