package repository

import (
	"context"

	"gorm.io/gorm"

	"auctions/internal/model"
)

// WatchlistRepository defines watchlist membership operations.
type WatchlistRepository interface {
	Exists(ctx context.Context, userID, listingID uint) (bool, error)
	Add(ctx context.Context, userID, listingID uint) error
	Remove(ctx context.Context, userID, listingID uint) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WatchlistRepository) error) error
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Exists reports whether the user watches the listing.
func (r *watchlistRepository) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Watchlist{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a membership row.
func (r *watchlistRepository) Add(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).Create(&model.Watchlist{UserID: userID, ListingID: listingID}).Error
}

// Remove deletes a membership row.
func (r *watchlistRepository) Remove(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&model.Watchlist{}).Error
}

// WithTransaction executes a function within a database transaction.
func (r *watchlistRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WatchlistRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &watchlistRepository{db: tx})
	})
}
