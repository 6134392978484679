package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type AuthController struct {
	users    *services.UserService
	auth     *services.AuthService
	tokenTTL time.Duration
}

func NewAuthController(users *services.UserService, auth *services.AuthService, tokenTTL time.Duration) *AuthController {
	return &AuthController{users: users, auth: auth, tokenTTL: tokenTTL}
}

type authPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new account with the USER role.
func (ac *AuthController) Register(c *gin.Context) {
	var payload authPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	hash, err := ac.auth.HashPassword(payload.Password)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	if _, err := ac.users.Create(c.Request.Context(), payload.Email, hash); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			utils.JSONError(c, http.StatusConflict, "user already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to register user")
		return
	}
	c.Status(http.StatusCreated)
}

// Login verifies credentials and sets the access token as an httpOnly
// cookie. The token is also returned in the body for non-browser clients.
func (ac *AuthController) Login(c *gin.Context) {
	var payload authPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := ac.users.FindByEmail(c.Request.Context(), payload.Email)
	if err != nil || !ac.auth.VerifyPassword(user.HashedPassword, payload.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	token, err := ac.auth.CreateAccessToken(user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(ac.tokenTTL.Seconds()), "/", "", false, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"access_token": token})
}

// Logout clears the access token cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"detail": "logged out"})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, middleware.CurrentUser(c))
}
