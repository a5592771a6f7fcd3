package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an append-only monetary offer on a listing.
type Bid struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	ListingID uint            `json:"listing_id" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Listing *Listing `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}
