package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"auctions/internal/auth"
	"auctions/internal/config"
	"auctions/internal/handler"
	"auctions/internal/middleware"
	"auctions/internal/validation"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Listing  *handler.ListingHandler
	Category *handler.CategoryHandler
	User     *handler.UserHandler
}

const loginPath = "/login"

// Register wires routes and middleware. Session cookies are verified with the key of jwtService.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, jwtService *auth.JWTService, authn middleware.Authenticator) {
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(middleware.Session(middleware.SessionConfig{
		SigningKey: jwtService.Secret(),
		CookieName: cfg.SessionCookie,
		Auth:       authn,
	})...)

	e.Validator = validation.Validator{}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Page views send anonymous visitors to the login form; actions answer 401.
	page := middleware.RequireLogin(loginPath)
	action := middleware.RequireAuth()

	e.GET("/", h.Listing.Index)

	e.GET(loginPath, h.Auth.LoginForm)
	e.POST(loginPath, h.Auth.Login)
	e.GET("/logout", h.Auth.Logout)
	e.POST("/logout", h.Auth.Logout)
	e.GET("/register", h.Auth.RegisterForm)
	e.POST("/register", h.Auth.Register)
	e.GET("/me", h.Auth.Me, action)

	e.GET("/user/:username", h.User.View)
	e.GET("/user/:username/edit", h.User.EditForm, page)
	e.POST("/user/:username/edit", h.User.Edit, page)

	e.GET("/category", h.Category.List)
	e.GET("/category/create", h.Category.CreateForm, page)
	e.POST("/category/create", h.Category.Create, page)
	e.GET("/category/:slug", h.Category.Detail)

	e.GET("/listing/new", h.Listing.NewForm, page)
	e.POST("/listing/new", h.Listing.Create, page)
	e.GET("/listing/:id", h.Listing.Detail)
	e.POST("/listing/:id", h.Listing.Act, action)
	e.POST("/listing/:id/watchlist", h.Listing.ToggleWatchlist, action)
	e.POST("/listing/:id/bids", h.Listing.PlaceBid, action)
	e.POST("/listing/:id/comments", h.Listing.AddComment, action)
	e.GET("/listing/:id/edit", h.Listing.EditForm, page)
	e.POST("/listing/:id/edit", h.Listing.Update, page)
	e.GET("/listing/:id/close", h.Listing.ClosePreview, page)
	e.POST("/listing/:id/close", h.Listing.Close, page)

	e.GET("/watchlist", h.Listing.Watchlist, action)
}
