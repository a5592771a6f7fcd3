package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"auctions/internal/errors"
	"auctions/internal/model"
	"auctions/internal/pagination"
)

type listingMocks struct {
	listings   *MockListingRepository
	categories *MockCategoryRepository
	auctions   *MockAuctionRepository
	comments   *MockCommentRepository
	watchlist  *MockWatchlistRepository
}

func newListingServiceWithMocks() (ListingService, listingMocks) {
	m := listingMocks{
		listings:   new(MockListingRepository),
		categories: new(MockCategoryRepository),
		auctions:   new(MockAuctionRepository),
		comments:   new(MockCommentRepository),
		watchlist:  new(MockWatchlistRepository),
	}
	return NewListingService(m.listings, m.categories, m.auctions, m.comments, m.watchlist, 2), m
}

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()
	author := &model.User{ID: 1}
	category := uint(3)

	svc, m := newListingServiceWithMocks()
	m.categories.On("FindByID", mock.Anything, category).Return(&model.Category{ID: category}, nil)
	m.listings.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
		return l.AuthorID == author.ID && l.Active && l.StartingBid.Equal(dec("50")) && *l.CategoryID == category
	})).Return(nil)

	listing, err := svc.Create(ctx, author, ListingForm{Title: " Lamp ", StartingBid: "50", CategoryID: &category})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", listing.Title)
	m.listings.AssertExpectations(t)

	_, err = svc.Create(ctx, nil, ListingForm{Title: "Lamp", StartingBid: "50"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestListingService_Create_UnknownCategory(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	missing := uint(99)
	m.categories.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), &model.User{ID: 1}, ListingForm{Title: "Lamp", StartingBid: "5", CategoryID: &missing})
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
	m.listings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingService_Update_KeepsStartingBid(t *testing.T) {
	ctx := context.Background()
	author := &model.User{ID: 1}
	stored := &model.Listing{ID: 5, Title: "Old", StartingBid: dec("50"), AuthorID: 1, Active: true}

	svc, m := newListingServiceWithMocks()
	m.listings.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	m.listings.On("Update", mock.Anything, mock.AnythingOfType("*model.Listing")).Return(nil)

	updated, err := svc.Update(ctx, 5, author, ListingForm{Title: "New", StartingBid: "1"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.StartingBid.Equal(dec("50")), "starting bid cannot change on edit")
	m.listings.AssertExpectations(t)
}

func TestListingService_Update_Authorization(t *testing.T) {
	stored := &model.Listing{ID: 5, StartingBid: dec("50"), AuthorID: 1}

	tests := []struct {
		name    string
		actor   *model.User
		wantErr error
	}{
		{"other user", &model.User{ID: 2}, errors.ErrForbidden},
		{"anonymous", nil, errors.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newListingServiceWithMocks()
			m.listings.On("FindByID", mock.Anything, uint(5)).Return(stored, nil).Maybe()

			_, err := svc.Update(context.Background(), 5, tt.actor, ListingForm{Title: "x"})
			assert.ErrorIs(t, err, tt.wantErr)
			m.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestListingService_Detail(t *testing.T) {
	ctx := context.Background()
	listing := &model.Listing{ID: 5, StartingBid: dec("50"), AuthorID: 1, Active: true}
	viewer := &model.User{ID: 2}

	svc, m := newListingServiceWithMocks()
	m.listings.On("FindByID", mock.Anything, uint(5)).Return(listing, nil)
	m.auctions.On("MaxBidAmount", mock.Anything, uint(5)).Return(someMax("70"), nil)
	m.auctions.On("ListBids", mock.Anything, uint(5)).Return([]model.Bid{{Amount: dec("70")}, {Amount: dec("55")}}, nil)
	m.comments.On("ListByListing", mock.Anything, uint(5)).Return([]model.Comment{{Text: "hi"}}, nil)
	m.watchlist.On("Exists", mock.Anything, viewer.ID, uint(5)).Return(true, nil)

	detail, err := svc.Detail(ctx, 5, viewer)
	require.NoError(t, err)
	assert.True(t, detail.CurrentPrice.Equal(dec("70")))
	assert.Equal(t, 2, detail.BidCount)
	assert.Len(t, detail.Comments, 1)
	assert.False(t, detail.IsAuthor)
	assert.True(t, detail.InWatchlist)

	anon, err := svc.Detail(ctx, 5, nil)
	require.NoError(t, err)
	assert.False(t, anon.InWatchlist)
	m.watchlist.AssertNumberOfCalls(t, "Exists", 1)
}

func TestListingService_Detail_NotFound(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	m.listings.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Detail(context.Background(), 8, nil)
	assert.ErrorIs(t, err, errors.ErrListingNotFound)
}

func TestListingService_ListActive(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	listings := []model.Listing{
		{ID: 1, StartingBid: dec("10")},
		{ID: 2, StartingBid: dec("20")},
	}
	m.listings.On("ListActive", mock.Anything, 6, 6).Return(listings, int64(8), nil)
	m.auctions.On("MaxBidAmounts", mock.Anything, []uint{1, 2}).Return(map[uint]decimal.Decimal{2: dec("35")}, nil)

	page, err := svc.ListActive(context.Background(), pagination.NewRequest(2, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []int{1, 2}, page.Window)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].CurrentPrice.Equal(dec("10")))
	assert.True(t, page.Items[1].CurrentPrice.Equal(dec("35")))
}

func TestListingService_ListByCategory(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	books := &model.Category{ID: 4, Name: "Books", Slug: "books"}
	listings := []model.Listing{{ID: 7, Title: "Atlas", StartingBid: dec("15"), Active: true}}
	m.listings.On("ListActiveByCategory", mock.Anything, uint(4), 0, 6).Return(listings, int64(1), nil)
	m.auctions.On("MaxBidAmounts", mock.Anything, []uint{7}).Return(map[uint]decimal.Decimal{}, nil)

	page, err := svc.ListByCategory(context.Background(), books, pagination.NewRequest(1, 6))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].CurrentPrice.Equal(dec("15")))
}

func TestListingService_ListActive_PastLastPage(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	m.listings.On("ListActive", mock.Anything, 12, 6).Return([]model.Listing{}, int64(8), nil)

	_, err := svc.ListActive(context.Background(), pagination.NewRequest(3, 6))
	assert.ErrorIs(t, err, errors.ErrPageNotFound)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	m.auctions.AssertNotCalled(t, "MaxBidAmounts", mock.Anything, mock.Anything)
}

func TestListingService_ListActive_EmptyFirstPage(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	m.listings.On("ListActive", mock.Anything, 0, 6).Return([]model.Listing{}, int64(0), nil)
	m.auctions.On("MaxBidAmounts", mock.Anything, []uint{}).Return(map[uint]decimal.Decimal{}, nil)

	page, err := svc.ListActive(context.Background(), pagination.NewRequest(1, 6))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestListingService_Watchlist_RequiresLogin(t *testing.T) {
	svc, m := newListingServiceWithMocks()
	_, err := svc.Watchlist(context.Background(), nil, pagination.NewRequest(1, 6))
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	m.listings.AssertNotCalled(t, "ListWatched", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
