package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing represents an item up for auction.
type Listing struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:63;not null"`
	Description string          `json:"description" gorm:"type:text"`
	StartingBid decimal.Decimal `json:"starting_bid" gorm:"type:decimal(20,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"size:2048"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`
	AuthorID    uint            `json:"author_id" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	Active      bool            `json:"active" gorm:"not null;default:true;index"`
	// MaxBidderID caches the user holding the highest bid.
	MaxBidderID *uint `json:"max_bidder_id"`

	// Relations
	Category  *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	MaxBidder *User     `json:"max_bidder,omitempty" gorm:"foreignKey:MaxBidderID;constraint:OnDelete:SET NULL"`
}
