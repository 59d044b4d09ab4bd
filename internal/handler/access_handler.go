package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/response"
	"github.com/gridwatch/gridboard/internal/service"
)

// AccessHandler serves the anonymous-capable viewer surface. The
// routes sit behind the optional auth gate: a valid bearer token
// identifies the caller, anything else means an anonymous visitor.
type AccessHandler struct {
	dashboards *service.DashboardService
	resp       *response.Formatter
}

func NewAccessHandler(dashboards *service.DashboardService, resp *response.Formatter) *AccessHandler {
	return &AccessHandler{dashboards: dashboards, resp: resp}
}

type checkPasswordNeededRequest struct {
	DashboardID string `json:"dashboardId" binding:"required"`
}

type checkPasswordRequest struct {
	DashboardID string `json:"dashboardId" binding:"required"`
	Password    string `json:"password"`
}

// CheckPasswordNeeded resolves what the caller may see of a dashboard
// before any password has been offered.
func (h *AccessHandler) CheckPasswordNeeded(c *gin.Context) {
	var req checkPasswordNeededRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	result, err := h.dashboards.ResolveAccess(c.Request.Context(), req.DashboardID, getUserID(c), nil)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The specified dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	switch result.Outcome {
	case service.AccessOwner:
		h.resp.Success(c, gin.H{
			"owner":       "self",
			"shared":      result.Shared,
			"hasPassword": result.HasPassword,
			"dashboard":   result.Dashboard,
		})
	case service.AccessSharedOpen:
		h.resp.Success(c, gin.H{
			"owner":          result.OwnerID,
			"shared":         true,
			"passwordNeeded": false,
			"dashboard":      result.Dashboard,
		})
	case service.AccessPasswordRequired:
		h.resp.Success(c, gin.H{
			"owner":          "",
			"shared":         true,
			"passwordNeeded": true,
		})
	default: // AccessDenied
		h.resp.Success(c, gin.H{
			"owner":  "",
			"shared": false,
		})
	}
}

// CheckPassword resolves access with a submitted plaintext password.
func (h *AccessHandler) CheckPassword(c *gin.Context) {
	var req checkPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	result, err := h.dashboards.ResolveAccess(c.Request.Context(), req.DashboardID, getUserID(c), &req.Password)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The specified dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	switch result.Outcome {
	case service.AccessOwner:
		h.resp.Success(c, gin.H{
			"correctPassword": true,
			"owner":           "self",
			"dashboard":       result.Dashboard,
		})
	case service.AccessSharedOpen, service.AccessSharedWithPassword:
		h.resp.Success(c, gin.H{
			"correctPassword": true,
			"owner":           result.OwnerID,
			"dashboard":       result.Dashboard,
		})
	default: // AccessWrongPassword, AccessDenied
		h.resp.Success(c, gin.H{"correctPassword": false})
	}
}
