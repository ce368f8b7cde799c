package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/api/middleware"
	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/phrazzld/taskdeck/internal/web"
)

// Flash messages shown after authentication failures.
const (
	FlashRegistrationFailed = "Registration failed"
	FlashLoginFailed        = "Login failed"
	FlashLoggedOut          = "You have been logged out."
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	pageWriter
	users         service.UserService
	auth          service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users service.UserService,
	auth service.AuthService,
	renderer web.Renderer,
	sink telemetry.Sink,
	secureCookies bool,
) *AuthHandler {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &AuthHandler{
		pageWriter:    pageWriter{renderer: renderer, telemetry: sink},
		users:         users,
		auth:          auth,
		secureCookies: secureCookies,
	}
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageRegister, "Register", web.Page{})
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("parse register form: %w", err), FlashRegistrationFailed, "/register")
		return
	}

	form := bindRegisterForm(r)
	if err := shared.ValidateRequest(&form); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", service.ErrInvalidInput, err), FlashRegistrationFailed, "/register")
		return
	}

	if _, err := h.users.Register(r.Context(), form.Username, form.Password); err != nil {
		h.fail(w, r, err, FlashRegistrationFailed, "/register")
		return
	}

	shared.SeeOther(w, r, "/login")
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageLogin, "Log in", web.Page{})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("parse login form: %w", err), FlashLoginFailed, "/login")
		return
	}

	form := bindLoginForm(r)
	if err := shared.ValidateRequest(&form); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", service.ErrInvalidCredentials, err), FlashLoginFailed, "/login")
		return
	}

	session, err := h.auth.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		h.fail(w, r, err, FlashLoginFailed, "/login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	shared.SeeOther(w, r, "/dashboard")
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), shared.CurrentSession(r.Context()))

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	shared.SetFlash(w, FlashLoggedOut)
	shared.SeeOther(w, r, "/")
}
