package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/jwt"
	"github.com/gridwatch/gridboard/internal/pkg/response"
)

// Context keys for the identity attached by the auth middlewares.
const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextEmailKey    = "user_email"
)

// bearerToken extracts the credential from an exact
// "Authorization: Bearer <token>" header. Any other shape counts as
// missing.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func attachClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	if claims.Username != "" {
		c.Set(ContextUsernameKey, claims.Username)
	}
	if claims.Email != "" {
		c.Set(ContextEmailKey, claims.Email)
	}
}

// JWTAuth rejects requests without a valid bearer token. Expiry maps
// to 401 so clients know to refresh; a missing or malformed credential
// maps to 403.
func JWTAuth(secret []byte, resp *response.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			resp.Error(c, http.StatusForbidden, "Authorization Error: token missing.")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			if err == appErr.ErrTokenExpired {
				resp.Error(c, http.StatusUnauthorized, "Authorization Error: token expired.")
			} else {
				resp.Error(c, http.StatusForbidden, "Authorization Error: failed to verify token.")
			}
			c.Abort()
			return
		}
		attachClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller identity when a valid token is
// present and stays silent otherwise. Anonymous-capable endpoints use
// it so the access policy can tell owners from visitors without
// demanding a credential.
func OptionalJWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwt.ParseToken(token, secret); err == nil {
				attachClaims(c, claims)
			}
		}
		c.Next()
	}
}
