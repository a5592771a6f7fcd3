package repository

import (
	"context"

	"gorm.io/gorm"

	"auctions/internal/model"
)

// listingOrder is newest first, title breaking timestamp ties.
const listingOrder = "listings.created_at DESC, listings.title ASC"

// ListingRepository defines listing persistence operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uint) (*model.Listing, error)
	ListActive(ctx context.Context, offset, limit int) ([]model.Listing, int64, error)
	ListActiveByCategory(ctx context.Context, categoryID uint, offset, limit int) ([]model.Listing, int64, error)
	ListWatched(ctx context.Context, userID uint, offset, limit int) ([]model.Listing, int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing.
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Update writes the author-editable columns. Starting bid, author, state and
// the max-bid holder are never touched here.
func (r *listingRepository) Update(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Model(listing).
		Select("title", "description", "image_url", "category_id").
		Updates(listing).Error
}

// FindByID finds a listing with its author, category and max-bid holder.
func (r *listingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("MaxBidder").
		First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListActive returns one page of open listings and the total count.
func (r *listingRepository) ListActive(ctx context.Context, offset, limit int) ([]model.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("listings.active = ?", true)
	return r.page(q, offset, limit)
}

// ListActiveByCategory returns one page of open listings in a category.
func (r *listingRepository) ListActiveByCategory(ctx context.Context, categoryID uint, offset, limit int) ([]model.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("listings.active = ? AND listings.category_id = ?", true, categoryID)
	return r.page(q, offset, limit)
}

// ListWatched returns one page of open listings on a user's watchlist.
func (r *listingRepository) ListWatched(ctx context.Context, userID uint, offset, limit int) ([]model.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Listing{}).
		Joins("JOIN watchlist ON watchlist.listing_id = listings.id").
		Where("watchlist.user_id = ? AND listings.active = ?", userID, true)
	return r.page(q, offset, limit)
}

func (r *listingRepository) page(q *gorm.DB, offset, limit int) ([]model.Listing, int64, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Listing{}, 0, nil
	}

	var listings []model.Listing
	if err := q.Select("listings.*").
		Preload("Category").
		Order(listingOrder).
		Offset(offset).
		Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}
