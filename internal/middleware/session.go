package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"auctions/internal/auth"
	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/model"
)

const (
	tokenContextKey = "session_token"
	userContextKey  = "current_user"
)

// Authenticator resolves session claims to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error)
}

// SessionConfig configures session loading.
type SessionConfig struct {
	SigningKey []byte
	CookieName string
	Auth       Authenticator
}

// Session returns the middleware chain that reads the session cookie, verifies
// the JWT and stores the signed-in user on the context. Requests without a
// valid session continue anonymously.
func Session(cfg SessionConfig) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:  cfg.SigningKey,
		TokenLookup: "cookie:" + cfg.CookieName,
		ContextKey:  tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// anonymous request
			return nil
		},
		ContinueOnIgnoredError: true,
	})
	return []echo.MiddlewareFunc{verify, loadUser(cfg.Auth)}
}

func loadUser(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok || token == nil {
				return next(c)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return next(c)
			}

			user, err := authenticator.Authenticate(c.Request().Context(), claims)
			switch {
			case err == nil:
				c.Set(userContextKey, user)
			case stderrors.Is(err, errors.ErrUnauthorized):
			default:
				logger.Warn("session lookup failed", map[string]any{
					"error":   err.Error(),
					"user_id": claims.UserID,
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// SetCurrentUser stores user on the context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}

// RequireLogin redirects anonymous visitors to loginPath, remembering where they were going.
func RequireLogin(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}
			target := loginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
	}
}

// RequireAuth answers anonymous requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}
			httpErr := errors.MapErrorToHTTP(errors.ErrUnauthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}
