package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/httpresp"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	"github.com/BruksfildServices01/crime-detection/internal/models"
	ucShift "github.com/BruksfildServices01/crime-detection/internal/usecase/shift"
)

// ======================================================
// HANDLER
// ======================================================

type ShiftHandler struct {
	create  *ucShift.CreateShift
	list    *ucShift.ListShifts
	get     *ucShift.GetShift
	update  *ucShift.UpdateShift
	delete  *ucShift.DeleteShift
	approve *ucShift.ApproveShift
}

func NewShiftHandler(
	create *ucShift.CreateShift,
	list *ucShift.ListShifts,
	get *ucShift.GetShift,
	update *ucShift.UpdateShift,
	remove *ucShift.DeleteShift,
	approve *ucShift.ApproveShift,
) *ShiftHandler {
	return &ShiftHandler{
		create:  create,
		list:    list,
		get:     get,
		update:  update,
		delete:  remove,
		approve: approve,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShiftRequest struct {
	Name      string    `json:"name" binding:"max=100"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type UpdateShiftRequest struct {
	Name      *string    `json:"name" binding:"omitempty,max=100"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ShiftHandler) List(c *gin.Context) {
	page := pageQuery(c)

	items, total, err := h.list.Execute(c.Request.Context(), middleware.CurrentUserID(c), page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List[models.Shift](c, items, total, page.Page, page.Size)
}

func (h *ShiftHandler) Create(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.create.Execute(c.Request.Context(), ucShift.CreateShiftInput{
		UserID:    middleware.CurrentUserID(c),
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, s, httpresp.MsgCreated)
}

func (h *ShiftHandler) Get(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeShiftNotFound)
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ShiftHandler) Update(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeShiftNotFound)
	if !ok {
		return
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), ucShift.UpdateShiftInput{
		UserID:    middleware.CurrentUserID(c),
		ShiftID:   id,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, s, httpresp.MsgUpdated)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeShiftNotFound)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, nil, httpresp.MsgDeleted)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ShiftHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, httperr.CodeShiftNotFound)
	if !ok {
		return
	}

	s, err := h.approve.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, s, httpresp.MsgShiftApproved)
}
