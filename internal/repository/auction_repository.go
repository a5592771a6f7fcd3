package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auctions/internal/model"
)

// AuctionRepository covers bids and the auction state columns of a listing.
type AuctionRepository interface {
	FindListing(ctx context.Context, listingID uint) (*model.Listing, error)
	FindListingForUpdate(ctx context.Context, listingID uint) (*model.Listing, error)
	MaxBidAmount(ctx context.Context, listingID uint) (decimal.NullDecimal, error)
	MaxBidAmounts(ctx context.Context, listingIDs []uint) (map[uint]decimal.Decimal, error)
	CreateBid(ctx context.Context, bid *model.Bid) error
	ListBids(ctx context.Context, listingID uint) ([]model.Bid, error)
	SetMaxBidder(ctx context.Context, listingID, userID uint) error
	MarkClosed(ctx context.Context, listingID uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AuctionRepository) error) error
}

type auctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new auction repository.
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

// FindListing loads a listing without locking it.
func (r *auctionRepository) FindListing(ctx context.Context, listingID uint) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// FindListingForUpdate loads a listing holding a row-level lock until the transaction ends.
func (r *auctionRepository) FindListingForUpdate(ctx context.Context, listingID uint) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", listingID).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// MaxBidAmount returns the highest bid on a listing; Valid is false when there are none.
func (r *auctionRepository) MaxBidAmount(ctx context.Context, listingID uint) (decimal.NullDecimal, error) {
	var max decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(&model.Bid{}).
		Select("MAX(amount)").
		Where("listing_id = ?", listingID).
		Row()
	if err := row.Scan(&max); err != nil {
		return decimal.NullDecimal{}, err
	}
	return max, nil
}

// MaxBidAmounts returns the highest bid per listing. Listings without bids are absent.
func (r *auctionRepository) MaxBidAmounts(ctx context.Context, listingIDs []uint) (map[uint]decimal.Decimal, error) {
	out := make(map[uint]decimal.Decimal, len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ListingID uint
		MaxAmount decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Select("listing_id, MAX(amount) AS max_amount").
		Where("listing_id IN ?", listingIDs).
		Group("listing_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ListingID] = row.MaxAmount
	}
	return out, nil
}

// CreateBid appends a bid.
func (r *auctionRepository) CreateBid(ctx context.Context, bid *model.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// ListBids returns bids on a listing, highest first.
func (r *auctionRepository) ListBids(ctx context.Context, listingID uint) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("amount DESC, created_at ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// SetMaxBidder updates the cached max-bid holder.
func (r *auctionRepository) SetMaxBidder(ctx context.Context, listingID, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", listingID).
		Update("max_bidder_id", userID).Error
}

// MarkClosed sets a listing inactive.
func (r *auctionRepository) MarkClosed(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", listingID).
		Update("active", false).Error
}

// WithTransaction executes a function within a database transaction.
func (r *auctionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AuctionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &auctionRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
