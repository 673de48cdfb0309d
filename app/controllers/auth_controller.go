package controllers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/config"
	"github.com/hostelmess/hostelmess/pkg/auth"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// AuthController handles login, logout and the current-session probe.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{service: services.NewAuthService(db)}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and sets the session cookie. The token is
// also returned in the body for non-browser clients.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(in.Email, in.Password)
	if err == services.ErrInvalidCredentials {
		response.Unauthorized(w, "Invalid email or password")
		return
	}
	if err != nil {
		response.Internal(w, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookie(),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.AppEnv() == "production",
	})

	response.OK(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout clears the session cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookie(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, nil)
}

// Me returns the account behind the current session.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Me(userID)
	if err == services.ErrNotFound {
		response.Unauthorized(w)
		return
	}
	if err != nil {
		response.Internal(w, "Failed to load account")
		return
	}
	response.OK(w, map[string]interface{}{"user": user})
}
