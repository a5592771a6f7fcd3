package model

import "time"

// Watchlist is the membership row joining a user to a listing they follow.
type Watchlist struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	ListingID uint      `json:"listing_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Listing *Listing `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the join table singular.
func (Watchlist) TableName() string { return "watchlist" }
