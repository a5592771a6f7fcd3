package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"auctions/internal/errors"
	"auctions/internal/middleware"
	"auctions/internal/model"
	"auctions/internal/service"
)

// Detail POST actions.
const (
	ActionWatchlistToggle = "watchlist-toggle"
	ActionPlaceBid        = "place-bid"
	ActionAddComment      = "add-comment"
)

// ListingHandler handles listing browsing, editing and the actions on a listing page.
type ListingHandler struct {
	listings   service.ListingService
	auctions   service.AuctionService
	watchlist  service.WatchlistService
	comments   service.CommentService
	categories service.CategoryService
	layout     Layout
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(
	listings service.ListingService,
	auctions service.AuctionService,
	watchlist service.WatchlistService,
	comments service.CommentService,
	categories service.CategoryService,
	layout Layout,
) *ListingHandler {
	return &ListingHandler{
		listings:   listings,
		auctions:   auctions,
		watchlist:  watchlist,
		comments:   comments,
		categories: categories,
		layout:     layout,
	}
}

// ListingRequest is the submitted listing form.
type ListingRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	CategoryID  FormID `form:"category_id" json:"category_id"`
	StartingBid string `form:"starting_bid" json:"starting_bid"`
	ImageURL    string `form:"image_url" json:"image_url"`
}

// ActionRequest carries the detail page action and its fields.
type ActionRequest struct {
	Action string `form:"action" json:"action"`
	Amount string `form:"amount" json:"amount"`
	Text   string `form:"text" json:"text"`
}

// ListingFormView is the data for the create and edit pages.
type ListingFormView struct {
	Listing    *model.Listing   `json:"listing,omitempty"`
	Categories []model.Category `json:"categories"`
}

// DetailView is the listing page, optionally with a rejected bid or comment.
type DetailView struct {
	*service.ListingDetail
	BidLow bool              `json:"bid_low,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// WatchlistToggleResponse reports watchlist membership after a toggle.
type WatchlistToggleResponse struct {
	ListingID   uint `json:"listing_id"`
	InWatchlist bool `json:"in_watchlist"`
}

func (r ListingRequest) form() (service.ListingForm, bool) {
	categoryID, ok := optionalID(string(r.CategoryID))
	return service.ListingForm{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  categoryID,
		StartingBid: r.StartingBid,
		ImageURL:    r.ImageURL,
	}, ok
}

// Index godoc
// @Summary Active listings
// @Tags listings
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} GridView
// @Router / [get]
func (h *ListingHandler) Index(c echo.Context) error {
	page, err := h.listings.ListActive(c.Request().Context(), h.layout.pageRequest(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, newGridView(page, h.layout.Columns))
}

// Watchlist godoc
// @Summary The signed-in user's watchlist
// @Tags listings
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} GridView
// @Failure 401 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *ListingHandler) Watchlist(c echo.Context) error {
	page, err := h.listings.Watchlist(c.Request().Context(), middleware.CurrentUser(c), h.layout.pageRequest(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, newGridView(page, h.layout.Columns))
}

// Detail godoc
// @Summary Listing page
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} DetailView
// @Failure 404 {object} errors.ErrorResponse
// @Router /listing/{id} [get]
func (h *ListingHandler) Detail(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	detail, err := h.listings.Detail(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, DetailView{ListingDetail: detail})
}

// Act godoc
// @Summary Watchlist toggle, bid or comment from the listing page
// @Tags listings
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Listing ID"
// @Param request body ActionRequest true "Action and its fields"
// @Success 200 {object} WatchlistToggleResponse
// @Success 303
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} DetailView
// @Failure 422 {object} DetailView
// @Router /listing/{id} [post]
func (h *ListingHandler) Act(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	switch req.Action {
	case ActionWatchlistToggle:
		return h.toggleWatchlist(c, id)
	case ActionPlaceBid:
		return h.placeBid(c, id, service.BidForm{Amount: req.Amount})
	case ActionAddComment:
		return h.addComment(c, id, service.CommentForm{Text: req.Text})
	default:
		return c.JSON(http.StatusUnprocessableEntity, FormResponse{
			Errors: map[string]string{"action": "Select a valid choice."},
		})
	}
}

// ToggleWatchlist godoc
// @Summary Add or remove a listing from the watchlist
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} WatchlistToggleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /listing/{id}/watchlist [post]
func (h *ListingHandler) ToggleWatchlist(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	return h.toggleWatchlist(c, id)
}

// PlaceBid godoc
// @Summary Bid on a listing
// @Tags listings
// @Accept x-www-form-urlencoded,json
// @Param id path int true "Listing ID"
// @Param request body service.BidForm true "Bid"
// @Success 303
// @Failure 409 {object} DetailView
// @Router /listing/{id}/bids [post]
func (h *ListingHandler) PlaceBid(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	var form service.BidForm
	if err := c.Bind(&form); err != nil {
		return badRequest()
	}
	return h.placeBid(c, id, form)
}

// AddComment godoc
// @Summary Comment on a listing
// @Tags listings
// @Accept x-www-form-urlencoded,json
// @Param id path int true "Listing ID"
// @Param request body service.CommentForm true "Comment"
// @Success 303
// @Failure 422 {object} DetailView
// @Router /listing/{id}/comments [post]
func (h *ListingHandler) AddComment(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	var form service.CommentForm
	if err := c.Bind(&form); err != nil {
		return badRequest()
	}
	return h.addComment(c, id, form)
}

func (h *ListingHandler) toggleWatchlist(c echo.Context, id uint) error {
	added, err := h.watchlist.Toggle(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, WatchlistToggleResponse{ListingID: id, InWatchlist: added})
}

func (h *ListingHandler) placeBid(c echo.Context, id uint, form service.BidForm) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	amount, err := form.Validate()
	if err == nil {
		_, err = h.auctions.PlaceBid(ctx, id, user, amount)
	}
	switch {
	case err == nil:
		return seeOther(c, listingPath(id))
	case stderrors.Is(err, errors.ErrBidTooLow):
		return h.redisplay(c, id, http.StatusConflict, DetailView{
			BidLow: true,
			Errors: map[string]string{"amount": "Your bid must be higher than the current price."},
		})
	case stderrors.Is(err, errors.ErrValidation):
		return h.redisplay(c, id, http.StatusUnprocessableEntity, DetailView{Errors: fieldErrors(err)})
	default:
		return failure(c, err)
	}
}

func (h *ListingHandler) addComment(c echo.Context, id uint, form service.CommentForm) error {
	_, err := h.comments.Add(c.Request().Context(), middleware.CurrentUser(c), id, form)
	switch {
	case err == nil:
		return seeOther(c, listingPath(id))
	case stderrors.Is(err, errors.ErrValidation):
		return h.redisplay(c, id, http.StatusUnprocessableEntity, DetailView{Errors: fieldErrors(err)})
	default:
		return failure(c, err)
	}
}

// redisplay renders the listing page again with status and the rejection details in view.
func (h *ListingHandler) redisplay(c echo.Context, id uint, status int, view DetailView) error {
	detail, err := h.listings.Detail(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return failure(c, err)
	}
	view.ListingDetail = detail
	return c.JSON(status, view)
}

// NewForm godoc
// @Summary New listing form
// @Tags listings
// @Produce json
// @Success 200 {object} ListingFormView
// @Router /listing/new [get]
func (h *ListingHandler) NewForm(c echo.Context) error {
	return h.formView(c, http.StatusOK, nil)
}

// Create godoc
// @Summary Create a listing
// @Tags listings
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body ListingRequest true "Listing"
// @Success 303
// @Failure 422 {object} FormResponse
// @Router /listing/new [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	form, ok := req.form()
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, FormResponse{
			Errors: map[string]string{"category_id": "Select a valid choice."},
			Input:  req,
		})
	}

	listing, err := h.listings.Create(c.Request().Context(), middleware.CurrentUser(c), form)
	if err != nil {
		return formFailure(c, err, req)
	}
	return seeOther(c, listingPath(listing.ID))
}

// EditForm godoc
// @Summary Edit listing form
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} ListingFormView
// @Failure 403 {object} errors.ErrorResponse
// @Router /listing/{id}/edit [get]
func (h *ListingHandler) EditForm(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	listing, err := h.listings.GetForEdit(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return failure(c, err)
	}
	return h.formView(c, http.StatusOK, listing)
}

// Update godoc
// @Summary Update a listing
// @Description The starting bid cannot be changed once set.
// @Tags listings
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Listing ID"
// @Param request body ListingRequest true "Listing"
// @Success 303
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} FormResponse
// @Router /listing/{id}/edit [post]
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}
	form, ok := req.form()
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, FormResponse{
			Errors: map[string]string{"category_id": "Select a valid choice."},
			Input:  req,
		})
	}

	listing, err := h.listings.Update(c.Request().Context(), id, middleware.CurrentUser(c), form)
	if err != nil {
		return formFailure(c, err, req)
	}
	return seeOther(c, listingPath(listing.ID))
}

// ClosePreview godoc
// @Summary Preview the winner before closing
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} service.CloseResult
// @Failure 403 {object} errors.ErrorResponse
// @Router /listing/{id}/close [get]
func (h *ListingHandler) ClosePreview(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	result, err := h.auctions.PreviewClose(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Close godoc
// @Summary Close the auction
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} service.CloseResult
// @Failure 403 {object} errors.ErrorResponse
// @Router /listing/{id}/close [post]
func (h *ListingHandler) Close(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	result, err := h.auctions.Close(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ListingHandler) formView(c echo.Context, status int, listing *model.Listing) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(status, ListingFormView{Listing: listing, Categories: categories})
}

func listingPath(id uint) string {
	return fmt.Sprintf("/listing/%d", id)
}

func fieldErrors(err error) map[string]string {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
