package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"auctions/internal/auth"
	"auctions/internal/model"
	"auctions/internal/pagination"
	"auctions/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form service.RegisterForm) (*service.Session, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockListingService is a mock implementation of service.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, author *model.User, form service.ListingForm) (*model.Listing, error) {
	args := m.Called(ctx, author, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, listingID uint, actor *model.User, form service.ListingForm) (*model.Listing, error) {
	args := m.Called(ctx, listingID, actor, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) GetForEdit(ctx context.Context, listingID uint, actor *model.User) (*model.Listing, error) {
	args := m.Called(ctx, listingID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Detail(ctx context.Context, listingID uint, viewer *model.User) (*service.ListingDetail, error) {
	args := m.Called(ctx, listingID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) ListActive(ctx context.Context, req pagination.Request) (pagination.Page[service.ListingCard], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(pagination.Page[service.ListingCard]), args.Error(1)
}

func (m *MockListingService) ListByCategory(ctx context.Context, category *model.Category, req pagination.Request) (pagination.Page[service.ListingCard], error) {
	args := m.Called(ctx, category, req)
	return args.Get(0).(pagination.Page[service.ListingCard]), args.Error(1)
}

func (m *MockListingService) Watchlist(ctx context.Context, user *model.User, req pagination.Request) (pagination.Page[service.ListingCard], error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(pagination.Page[service.ListingCard]), args.Error(1)
}

// MockAuctionService is a mock implementation of service.AuctionService.
type MockAuctionService struct {
	mock.Mock
}

func (m *MockAuctionService) CurrentPrice(ctx context.Context, listing *model.Listing) (decimal.Decimal, error) {
	args := m.Called(ctx, listing)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAuctionService) MaxBid(ctx context.Context, listingID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAuctionService) PlaceBid(ctx context.Context, listingID uint, bidder *model.User, amount decimal.Decimal) (*model.Bid, error) {
	args := m.Called(ctx, listingID, bidder, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bid), args.Error(1)
}

func (m *MockAuctionService) PreviewClose(ctx context.Context, listingID uint, requester *model.User) (*service.CloseResult, error) {
	args := m.Called(ctx, listingID, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CloseResult), args.Error(1)
}

func (m *MockAuctionService) Close(ctx context.Context, listingID uint, requester *model.User) (*service.CloseResult, error) {
	args := m.Called(ctx, listingID, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CloseResult), args.Error(1)
}

// MockWatchlistService is a mock implementation of service.WatchlistService.
type MockWatchlistService struct {
	mock.Mock
}

func (m *MockWatchlistService) Toggle(ctx context.Context, user *model.User, listingID uint) (bool, error) {
	args := m.Called(ctx, user, listingID)
	return args.Bool(0), args.Error(1)
}

// MockCommentService is a mock implementation of service.CommentService.
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, author *model.User, listingID uint, form service.CommentForm) (*model.Comment, error) {
	args := m.Called(ctx, author, listingID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor *model.User, form service.CategoryForm) (*model.Category, error) {
	args := m.Called(ctx, actor, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetForEdit(ctx context.Context, actor *model.User, username string) (*model.User, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, actor *model.User, username string, form service.ProfileForm) (*model.User, error) {
	args := m.Called(ctx, actor, username, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
