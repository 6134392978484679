package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"
)

// AccessTokenCookie is the httpOnly cookie carrying the JWT.
const AccessTokenCookie = "booking_access_token"

const currentUserKey = "currentUser"

func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// RequireAuth validates the access token and loads the user into the
// request context. All failures are 401 with a stable message.
func RequireAuth(auth *services.AuthService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "token is missing")
			c.Abort()
			return
		}

		claims, err := auth.ParseAccessToken(token)
		if err != nil {
			msg := "invalid token format"
			if errors.Is(err, services.ErrTokenExpired) {
				msg = "token has expired"
			}
			utils.JSONError(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.JSONError(c, http.StatusUnauthorized, "token is missing")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
