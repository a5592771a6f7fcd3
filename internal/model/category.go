package model

// Category groups listings. Slug is derived from Name when the category is saved.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:63;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:31;not null"`
}
