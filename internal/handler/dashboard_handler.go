package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/response"
	"github.com/gridwatch/gridboard/internal/service"
)

// DashboardHandler serves the owner-only dashboard surface. Every
// route is behind the auth gate; ownership is re-checked per record
// in the service.
type DashboardHandler struct {
	dashboards *service.DashboardService
	resp       *response.Formatter
}

func NewDashboardHandler(dashboards *service.DashboardService, resp *response.Formatter) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, resp: resp}
}

type createDashboardRequest struct {
	Name string `json:"name" binding:"required"`
}

type deleteDashboardRequest struct {
	ID string `json:"id" binding:"required"`
}

type saveDashboardRequest struct {
	ID     string          `json:"id" binding:"required"`
	Layout json.RawMessage `json:"layout"`
	Items  json.RawMessage `json:"items"`
	NextID int             `json:"nextId"`
}

type renameDashboardRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type cloneDashboardRequest struct {
	DashboardID string `json:"dashboardId" binding:"required"`
	Name        string `json:"name" binding:"required"`
}

type shareDashboardRequest struct {
	DashboardID string `json:"dashboardId" binding:"required"`
}

type dashboardPasswordRequest struct {
	DashboardID string `json:"dashboardId" binding:"required"`
	Password    string `json:"password"`
}

func (h *DashboardHandler) List(c *gin.Context) {
	dashboards, err := h.dashboards.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"dashboards": dashboards})
}

func (h *DashboardHandler) Create(c *gin.Context) {
	var req createDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	dashboard, err := h.dashboards.Create(c.Request.Context(), getUserID(c), req.Name)
	if err != nil {
		if errors.Is(err, appErr.ErrConflict) {
			h.resp.Error(c, http.StatusConflict, "A dashboard with that name already exists.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"id": dashboard.ID})
}

func (h *DashboardHandler) Delete(c *gin.Context) {
	var req deleteDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	if err := h.dashboards.Delete(c.Request.Context(), getUserID(c), req.ID); err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The selected dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{})
}

func (h *DashboardHandler) Get(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	dashboard, err := h.dashboards.Get(c.Request.Context(), getUserID(c), id)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The selected dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"dashboard": dashboard})
}

func (h *DashboardHandler) Save(c *gin.Context) {
	var req saveDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	err := h.dashboards.Save(c.Request.Context(), getUserID(c), req.ID, req.Layout, req.Items, req.NextID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The selected dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{})
}

func (h *DashboardHandler) Rename(c *gin.Context) {
	var req renameDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	err := h.dashboards.Rename(c.Request.Context(), getUserID(c), req.ID, req.Name)
	if err != nil {
		if errors.Is(err, appErr.ErrConflict) {
			h.resp.Error(c, http.StatusConflict, "A dashboard with that name already exists.")
			return
		}
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The selected dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{})
}

func (h *DashboardHandler) Clone(c *gin.Context) {
	var req cloneDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	dashboard, err := h.dashboards.Clone(c.Request.Context(), getUserID(c), req.DashboardID, req.Name)
	if err != nil {
		if errors.Is(err, appErr.ErrConflict) {
			h.resp.Error(c, http.StatusConflict, "A dashboard with that name already exists.")
			return
		}
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The selected dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"id": dashboard.ID})
}

func (h *DashboardHandler) Share(c *gin.Context) {
	var req shareDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	shared, err := h.dashboards.ToggleShare(c.Request.Context(), getUserID(c), req.DashboardID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The specified dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{"shared": shared})
}

func (h *DashboardHandler) ChangePassword(c *gin.Context) {
	var req dashboardPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
		return
	}
	err := h.dashboards.SetPassword(c.Request.Context(), getUserID(c), req.DashboardID, req.Password)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			h.resp.Error(c, http.StatusNotFound, "The specified dashboard has not been found.")
			return
		}
		handleError(c, h.resp, err)
		return
	}
	h.resp.Success(c, gin.H{})
}
