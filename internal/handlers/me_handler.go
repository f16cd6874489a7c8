package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/httpresp"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	ucUser "github.com/BruksfildServices01/crime-detection/internal/usecase/user"
)

type MeHandler struct {
	update *ucUser.UpdateProfile
}

func NewMeHandler(update *ucUser.UpdateProfile) *MeHandler {
	return &MeHandler{update: update}
}

type UpdateMeRequest struct {
	Firstname *string `json:"firstname" binding:"omitempty,max=100"`
	Lastname  *string `json:"lastname" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
}

// GetMe returns the user loaded by the auth middleware.
func (h *MeHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, dto.NewUserDTO(middleware.CurrentUser(c)))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), ucUser.UpdateProfileInput{
		UserID:    middleware.CurrentUserID(c),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, dto.NewUserDTO(u), httpresp.MsgUpdated)
}
