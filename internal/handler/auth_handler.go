package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"auctions/internal/errors"
	"auctions/internal/middleware"
	"auctions/internal/service"
)

// AuthHandler handles login, logout and registration.
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// LoginRequest represents submitted credentials.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next" query:"next"`
}

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginForm godoc
// @Summary Login form
// @Tags auth
// @Produce json
// @Param next query string false "Where to go after signing in"
// @Success 200 {object} map[string]string
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"next": safeNext(c.QueryParam("next"), "/")})
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 303
// @Failure 401 {object} FormResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, FormResponse{
				Message: "Invalid username and/or password.",
				Input:   map[string]string{"username": req.Username},
			})
		}
		return failure(c, err)
	}

	next := req.Next
	if next == "" {
		next = c.QueryParam("next")
	}
	h.setSession(c, session)
	return seeOther(c, safeNext(next, "/"))
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 303
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return failure(c, err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return seeOther(c, "/")
}

// RegisterForm godoc
// @Summary Registration form
// @Tags auth
// @Produce json
// @Success 200 {object} FormResponse
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormResponse{Input: registerInput{}})
}

// Register godoc
// @Summary Create an account and sign in
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body service.RegisterForm true "Registration data"
// @Success 303
// @Failure 409 {object} FormResponse
// @Failure 422 {object} FormResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form service.RegisterForm
	if err := c.Bind(&form); err != nil {
		return badRequest()
	}
	input := registerInput{Username: form.Username, Email: form.Email}

	session, err := h.authService.Register(c.Request().Context(), form)
	if err != nil {
		if stderrors.Is(err, errors.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, FormResponse{
				Errors: map[string]string{"username": "Username already taken."},
				Input:  input,
			})
		}
		return formFailure(c, err, input)
	}

	h.setSession(c, session)
	return seeOther(c, "/")
}

// Me godoc
// @Summary Signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *AuthHandler) setSession(c echo.Context, session *service.Session) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
