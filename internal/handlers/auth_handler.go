package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/httpresp"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	ucUser "github.com/BruksfildServices01/crime-detection/internal/usecase/user"
)

type AuthHandler struct {
	signup *ucUser.Signup
	login  *ucUser.Login
	logout *ucUser.Logout
}

func NewAuthHandler(
	signup *ucUser.Signup,
	login *ucUser.Login,
	logout *ucUser.Logout,
) *AuthHandler {
	return &AuthHandler{
		signup: signup,
		login:  login,
		logout: logout,
	}
}

// --------- Requests ---------

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
	Firstname string `json:"firstname" binding:"required,max=100"`
	Lastname  string `json:"lastname" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.signup.Execute(c.Request.Context(), ucUser.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		Role:      req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewUserDTO(u), httpresp.MsgUserCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.LoginDTO{
		User:        dto.NewUserDTO(res.User),
		AccessToken: res.Token,
		TokenType:   auth.TokenType,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, nil, httpresp.MsgLoggedOut)
}
