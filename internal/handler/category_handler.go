package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"auctions/internal/errors"
	"auctions/internal/middleware"
	"auctions/internal/model"
	"auctions/internal/service"
)

// CategoryHandler handles category pages.
type CategoryHandler struct {
	categories service.CategoryService
	listings   service.ListingService
	layout     Layout
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService, listings service.ListingService, layout Layout) *CategoryHandler {
	return &CategoryHandler{categories: categories, listings: listings, layout: layout}
}

// CategoryView is a category with a page of its active listings.
type CategoryView struct {
	Category *model.Category `json:"category"`
	Listings GridView        `json:"listings"`
}

// List godoc
// @Summary All categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Detail godoc
// @Summary Active listings in a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} CategoryView
// @Failure 404 {object} errors.ErrorResponse
// @Router /category/{slug} [get]
func (h *CategoryHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	category, err := h.categories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return failure(c, err)
	}
	page, err := h.listings.ListByCategory(ctx, category, h.layout.pageRequest(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, CategoryView{Category: category, Listings: newGridView(page, h.layout.Columns)})
}

// CreateForm godoc
// @Summary New category form
// @Tags categories
// @Produce json
// @Success 200 {object} FormResponse
// @Router /category/create [get]
func (h *CategoryHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormResponse{Input: service.CategoryForm{}})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body service.CategoryForm true "Category"
// @Success 303
// @Failure 409 {object} FormResponse
// @Failure 422 {object} FormResponse
// @Router /category/create [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var form service.CategoryForm
	if err := c.Bind(&form); err != nil {
		return badRequest()
	}

	category, err := h.categories.Create(c.Request().Context(), middleware.CurrentUser(c), form)
	if err != nil {
		if stderrors.Is(err, errors.ErrSlugTaken) || stderrors.Is(err, errors.ErrSlugReserved) {
			return c.JSON(http.StatusConflict, FormResponse{
				Errors: map[string]string{"name": slugMessage(err)},
				Input:  form,
			})
		}
		return formFailure(c, err, form)
	}
	return seeOther(c, "/category/"+category.Slug)
}

func slugMessage(err error) string {
	if stderrors.Is(err, errors.ErrSlugReserved) {
		return "Slug may not be 'create'."
	}
	return "Such category already exists."
}
