package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"auctions/internal/errors"
	"auctions/internal/validation"
)

// ListingForm is the submitted listing create/edit input.
type ListingForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=63"`
	Description string `form:"description" json:"description" validate:"max=5000"`
	CategoryID  *uint  `form:"category_id" json:"category_id,omitempty"`
	StartingBid string `form:"starting_bid" json:"starting_bid"`
	ImageURL    string `form:"image_url" json:"image_url" validate:"omitempty,url,max=2048"`
}

// ListingFields is a ListingForm that passed validation.
type ListingFields struct {
	Title       string
	Description string
	CategoryID  *uint
	StartingBid decimal.Decimal
	ImageURL    string
}

// Validate checks the form and parses the starting bid.
func (f ListingForm) Validate() (ListingFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	err := validation.Struct(f)

	extra := map[string]string{}
	bid, msg := parseAmount(f.StartingBid)
	if msg == "" && !bid.IsPositive() {
		msg = "Ensure this value is greater than 0."
	}
	if msg != "" {
		extra["starting_bid"] = msg
	}
	if f.CategoryID != nil && *f.CategoryID == 0 {
		f.CategoryID = nil
	}

	if err := validation.Merge(err, extra); err != nil {
		return ListingFields{}, err
	}
	return ListingFields{
		Title:       f.Title,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		StartingBid: bid,
		ImageURL:    f.ImageURL,
	}, nil
}

// BidForm is a submitted bid.
type BidForm struct {
	Amount string `form:"amount" json:"amount"`
}

// Validate parses the amount.
func (f BidForm) Validate() (decimal.Decimal, error) {
	amount, msg := parseAmount(f.Amount)
	if msg != "" {
		return decimal.Zero, errors.Field("amount", msg)
	}
	return amount, nil
}

// Money columns are decimal(20,2).
const (
	amountPlaces    = 2
	amountMaxDigits = 20
)

var amountLimit = decimal.New(1, amountMaxDigits-amountPlaces)

// parseAmount parses a money value that fits the money columns exactly.
// It returns a form message when it does not.
func parseAmount(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, "This field is required."
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "Enter a number."
	}
	if !amount.Equal(amount.Truncate(amountPlaces)) {
		return decimal.Zero, "Ensure that there are no more than 2 decimal places."
	}
	if amount.Abs().GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, "Ensure that there are no more than 20 digits in total."
	}
	return amount.Truncate(amountPlaces), ""
}

// CommentForm is a submitted comment.
type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required,max=2000"`
}

// Validate checks the comment text.
func (f CommentForm) Validate() (string, error) {
	f.Text = strings.TrimSpace(f.Text)
	if err := validation.Struct(f); err != nil {
		return "", err
	}
	return f.Text, nil
}

// CategoryForm is the submitted category name.
type CategoryForm struct {
	Name string `form:"name" json:"name" validate:"required,max=63"`
}

// Validate checks the name.
func (f CategoryForm) Validate() (string, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := validation.Struct(f); err != nil {
		return "", err
	}
	return f.Name, nil
}

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	AvatarURL string `form:"avatar_url" json:"avatar_url" validate:"omitempty,url,max=2048"`
}

// Validate checks the profile fields.
func (f ProfileForm) Validate() (ProfileForm, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.AvatarURL = strings.TrimSpace(f.AvatarURL)
	if err := validation.Struct(f); err != nil {
		return ProfileForm{}, err
	}
	return f, nil
}

// RegisterForm is the sign-up input.
type RegisterForm struct {
	Username     string `form:"username" json:"username" validate:"required,max=150"`
	Email        string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Password     string `form:"password" json:"password" validate:"required"`
	Confirmation string `form:"confirmation" json:"confirmation" validate:"required"`
}

// Validate checks the form. A confirmation that differs from the password is reported on the confirmation field.
func (f RegisterForm) Validate() (RegisterForm, error) {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	extra := map[string]string{}
	if strings.ContainsAny(f.Username, " \t\r\n/") {
		extra["username"] = "Enter a valid username."
	}
	if err := validation.Merge(validation.Struct(f), extra); err != nil {
		return RegisterForm{}, err
	}
	if f.Password != f.Confirmation {
		return RegisterForm{}, &errors.ValidationError{
			Fields: map[string]string{"confirmation": "Passwords must match."},
			Reason: errors.ErrPasswordMismatch,
		}
	}
	return f, nil
}
