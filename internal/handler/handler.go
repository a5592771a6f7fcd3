package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/pagination"
	"auctions/internal/service"
)

// FormResponse is returned when submitted input is re-displayed with errors.
type FormResponse struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Input   any               `json:"input,omitempty"`
}

// GridView is a page of listing cards laid out in rows.
type GridView struct {
	Rows       [][]service.ListingCard `json:"rows"`
	Number     int                     `json:"number"`
	TotalPages int                     `json:"total_pages"`
	TotalItems int64                   `json:"total_items"`
	Window     []int                   `json:"window"`
	HasPrev    bool                    `json:"has_prev"`
	HasNext    bool                    `json:"has_next"`
}

func newGridView(page pagination.Page[service.ListingCard], columns int) GridView {
	return GridView{
		Rows:       pagination.Grid(page.Items, columns),
		Number:     page.Number,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
		Window:     page.Window,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
	}
}

// Layout sets the page size and grid width shared by browsing handlers.
type Layout struct {
	PageSize int
	Columns  int
}

func (l Layout) pageRequest(c echo.Context) pagination.Request {
	number := 1
	// a malformed page number falls back to the first page
	_ = echo.QueryParamsBinder(c).Int("page", &number).BindError()
	return pagination.NewRequest(number, l.PageSize)
}

// failure turns a service error into an echo HTTP error.
func failure(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("request failed", map[string]any{
			"error":  err.Error(),
			"method": c.Request().Method,
			"path":   c.Path(),
		})
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// formFailure re-displays input errors inline and falls through to failure for everything else.
func formFailure(c echo.Context, err error, input any) error {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, FormResponse{Errors: verr.Fields, Input: input})
	}
	return failure(c, err)
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "BAD_REQUEST",
	})
}

func listingID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrListingNotFound.Error(),
			Code:  "LISTING_NOT_FOUND",
		})
	}
	return uint(id), nil
}

// FormID is an id field that binds from form values and from JSON numbers or strings.
type FormID string

// UnmarshalJSON accepts 3, "3" and null.
func (id *FormID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FormID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FormID(n.String())
	return nil
}

// optionalID parses a form id where empty or zero means none.
func optionalID(raw string) (*uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	if id == 0 {
		return nil, true
	}
	v := uint(id)
	return &v, true
}

// safeNext returns next when it is a local path, otherwise fallback.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}

func seeOther(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}
