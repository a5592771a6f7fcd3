package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"auctions/internal/middleware"
	"auctions/internal/service"
)

// UserHandler handles profile pages.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// View godoc
// @Summary User profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{username} [get]
func (h *UserHandler) View(c echo.Context) error {
	user, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// EditForm godoc
// @Summary Profile edit form
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.ProfileForm
// @Failure 403 {object} errors.ErrorResponse
// @Router /user/{username}/edit [get]
func (h *UserHandler) EditForm(c echo.Context) error {
	user, err := h.users.GetForEdit(c.Request().Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, service.ProfileForm{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	})
}

// Edit godoc
// @Summary Update profile
// @Tags users
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username path string true "Username"
// @Param request body service.ProfileForm true "Profile"
// @Success 303
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} FormResponse
// @Router /user/{username}/edit [post]
func (h *UserHandler) Edit(c echo.Context) error {
	var form service.ProfileForm
	if err := c.Bind(&form); err != nil {
		return badRequest()
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), c.Param("username"), form)
	if err != nil {
		return formFailure(c, err, form)
	}
	return seeOther(c, "/user/"+user.Username)
}
