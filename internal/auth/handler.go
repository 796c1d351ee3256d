package auth

import (
	"errors"
	"net/http"
	"time"

	"FacultyManager/internal/config"
	"FacultyManager/internal/session"
	"FacultyManager/internal/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *UserService
	cfg     *config.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service *UserService, cfg *config.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg, log: log}
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return views.Render(c, http.StatusOK, "login.html", echo.Map{"Username": ""})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return views.Render(c, http.StatusBadRequest, "login.html", echo.Map{
			"Username": "",
			"Flash":    &views.Flash{Kind: views.FlashError, Message: "Invalid request"},
		})
	}

	token, user, err := h.service.Authenticate(c.Request().Context(), cred)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.log.Error("Login failed", zap.Error(err))
		}
		return views.Render(c, http.StatusUnauthorized, "login.html", echo.Map{
			"Username": cred.Username,
			"Flash":    &views.Flash{Kind: views.FlashError, Message: "Invalid username or password"},
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     config.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.TTL),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	h.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) ShowSignup(c echo.Context) error {
	return views.Render(c, http.StatusOK, "signup.html", echo.Map{"Username": "", "Email": ""})
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return views.Render(c, http.StatusBadRequest, "signup.html", echo.Map{
			"Username": "",
			"Email":    "",
			"Flash":    &views.Flash{Kind: views.FlashError, Message: "Invalid request"},
		})
	}

	_, err := h.service.Signup(c.Request().Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		message := "Could not create account"
		switch {
		case errors.Is(err, ErrPasswordTooLong):
			code, message = http.StatusBadRequest, "Password must be at most 72 bytes"
		case errors.Is(err, ErrInvalidSignup):
			code, message = http.StatusBadRequest, "Username, password and email are required"
		case errors.Is(err, ErrAccountExists):
			code, message = http.StatusConflict, "Username or email is already registered"
		default:
			h.log.Error("Signup failed", zap.Error(err))
		}
		return views.Render(c, code, "signup.html", echo.Map{
			"Username": req.Username,
			"Email":    req.Email,
			"Flash":    &views.Flash{Kind: views.FlashError, Message: message},
		})
	}
	return views.Redirect(c, "/login", views.FlashSuccess, "You have signed up successfully! You can now log in.")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
	})
	return views.Redirect(c, "/login", views.FlashInfo, "You have been logged out.")
}

func (h *AuthHandler) ShowSettings(c echo.Context) error {
	s, ok := session.From(c.Request().Context())
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	user, err := h.service.Settings(c.Request().Context(), s.UserID)
	if err != nil {
		return h.settingsError(c, err)
	}
	return views.Render(c, http.StatusOK, "settings.html", echo.Map{"User": user})
}

func (h *AuthHandler) UpdateSettings(c echo.Context) error {
	s, ok := session.From(c.Request().Context())
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	enabled := c.FormValue("receive_notifications") == "on"
	user, err := h.service.UpdateNotifications(c.Request().Context(), s.UserID, enabled)
	if err != nil {
		return h.settingsError(c, err)
	}
	return views.Render(c, http.StatusOK, "settings.html", echo.Map{
		"User":  user,
		"Flash": &views.Flash{Kind: views.FlashSuccess, Message: "Your notification preferences have been updated."},
	})
}

func (h *AuthHandler) settingsError(c echo.Context, err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return views.Render(c, http.StatusNotFound, "error.html", echo.Map{"Code": http.StatusNotFound, "Message": "User not found"})
	}
	h.log.Error("Settings failed", zap.Error(err))
	return err
}
