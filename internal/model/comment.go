package model

import "time"

// Comment is an append-only remark left on a listing.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	ListingID uint      `json:"listing_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author  *User    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Listing *Listing `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}
