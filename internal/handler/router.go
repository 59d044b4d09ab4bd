package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gridwatch/gridboard/internal/middleware"
	"github.com/gridwatch/gridboard/internal/pkg/response"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Dashboards *DashboardHandler
	Access     *AccessHandler
	Resp       *response.Formatter
	JWTSecret  []byte
	// Minimum interval between attempts on the credential endpoints.
	AuthRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authLimit := middleware.RateLimit(deps.AuthRateWindow, deps.Resp)

	api.POST("/users/create", deps.Auth.Register)
	api.POST("/users/authenticate", authLimit, deps.Auth.Authenticate)
	api.POST("/users/resetpassword", authLimit, deps.Auth.ResetPassword)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret, deps.Resp))
	authGroup.POST("/users/changepassword", deps.Auth.ChangePassword)

	authGroup.GET("/dashboards", deps.Dashboards.List)
	authGroup.GET("/dashboard", deps.Dashboards.Get)
	authGroup.POST("/create-dashboard", deps.Dashboards.Create)
	authGroup.POST("/delete-dashboard", deps.Dashboards.Delete)
	authGroup.POST("/save-dashboard", deps.Dashboards.Save)
	authGroup.POST("/rename-dashboard", deps.Dashboards.Rename)
	authGroup.POST("/clone-dashboard", deps.Dashboards.Clone)
	authGroup.POST("/share-dashboard", deps.Dashboards.Share)
	authGroup.POST("/change-password", deps.Dashboards.ChangePassword)

	// Public viewer endpoints: identity is optional, the access
	// policy tolerates anonymous callers.
	viewerGroup := api.Group("")
	viewerGroup.Use(middleware.OptionalJWTAuth(deps.JWTSecret))
	viewerGroup.POST("/check-password-needed", deps.Access.CheckPasswordNeeded)
	viewerGroup.POST("/check-password", authLimit, deps.Access.CheckPassword)
}
