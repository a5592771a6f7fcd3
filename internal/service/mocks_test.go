package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"auctions/internal/events"
	"auctions/internal/model"
	"auctions/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListActive(ctx context.Context, offset, limit int) ([]model.Listing, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]model.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) ListActiveByCategory(ctx context.Context, categoryID uint, offset, limit int) ([]model.Listing, int64, error) {
	args := m.Called(ctx, categoryID, offset, limit)
	return args.Get(0).([]model.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) ListWatched(ctx context.Context, userID uint, offset, limit int) ([]model.Listing, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]model.Listing), args.Get(1).(int64), args.Error(2)
}

// MockAuctionRepository is a mock implementation of AuctionRepository.
type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) FindListing(ctx context.Context, listingID uint) (*model.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockAuctionRepository) FindListingForUpdate(ctx context.Context, listingID uint) (*model.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockAuctionRepository) MaxBidAmount(ctx context.Context, listingID uint) (decimal.NullDecimal, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(decimal.NullDecimal), args.Error(1)
}

func (m *MockAuctionRepository) MaxBidAmounts(ctx context.Context, listingIDs []uint) (map[uint]decimal.Decimal, error) {
	args := m.Called(ctx, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]decimal.Decimal), args.Error(1)
}

func (m *MockAuctionRepository) CreateBid(ctx context.Context, bid *model.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockAuctionRepository) ListBids(ctx context.Context, listingID uint) ([]model.Bid, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *MockAuctionRepository) SetMaxBidder(ctx context.Context, listingID, userID uint) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}

func (m *MockAuctionRepository) MarkClosed(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockAuctionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.AuctionRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockWatchlistRepository is a mock implementation of WatchlistRepository.
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchlistRepository) Add(ctx context.Context, userID, listingID uint) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockWatchlistRepository) Remove(ctx context.Context, userID, listingID uint) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockWatchlistRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.WatchlistRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByListing(ctx context.Context, listingID uint) ([]model.Comment, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
