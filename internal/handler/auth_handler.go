package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/response"
	"github.com/gridwatch/gridboard/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	resp *response.Formatter
}

func NewAuthHandler(auth *service.AuthService, resp *response.Formatter) *AuthHandler {
	return &AuthHandler{auth: auth, resp: resp}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authenticateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, appErr.ErrConflict) {
			h.resp.Error(c, http.StatusConflict, "Registration Error: A user with that e-mail or username already exists.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"id": user.ID})
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, appErr.ErrUnauthorized) {
			h.resp.Error(c, http.StatusUnauthorized, "Authentication Error: username or password mismatch.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	if err := h.auth.RequestReset(c.Request.Context(), req.Username); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "Resource Error: user not found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"message": "Forgot password e-mail sent."})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), getUserID(c), req.Password); err != nil {
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"message": "Password was changed."})
}
