package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/pagination"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

// ListingCard is a listing as shown in a grid, with its current price.
type ListingCard struct {
	model.Listing
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// ListingDetail is everything the listing page shows.
type ListingDetail struct {
	Listing      *model.Listing  `json:"listing"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	BidCount     int             `json:"bid_count"`
	Bids         []model.Bid     `json:"bids"`
	Comments     []model.Comment `json:"comments"`
	IsAuthor     bool            `json:"is_author"`
	InWatchlist  bool            `json:"in_watchlist"`
}

// ListingService handles listing CRUD and browsing.
type ListingService interface {
	Create(ctx context.Context, author *model.User, form ListingForm) (*model.Listing, error)
	Update(ctx context.Context, listingID uint, actor *model.User, form ListingForm) (*model.Listing, error)
	GetForEdit(ctx context.Context, listingID uint, actor *model.User) (*model.Listing, error)
	Detail(ctx context.Context, listingID uint, viewer *model.User) (*ListingDetail, error)
	ListActive(ctx context.Context, req pagination.Request) (pagination.Page[ListingCard], error)
	ListByCategory(ctx context.Context, category *model.Category, req pagination.Request) (pagination.Page[ListingCard], error)
	Watchlist(ctx context.Context, user *model.User, req pagination.Request) (pagination.Page[ListingCard], error)
}

type listingService struct {
	listingRepo   repository.ListingRepository
	categoryRepo  repository.CategoryRepository
	auctionRepo   repository.AuctionRepository
	commentRepo   repository.CommentRepository
	watchlistRepo repository.WatchlistRepository
	pageRadius    int
}

// NewListingService creates a new listing service.
func NewListingService(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	auctionRepo repository.AuctionRepository,
	commentRepo repository.CommentRepository,
	watchlistRepo repository.WatchlistRepository,
	pageRadius int,
) ListingService {
	return &listingService{
		listingRepo:   listingRepo,
		categoryRepo:  categoryRepo,
		auctionRepo:   auctionRepo,
		commentRepo:   commentRepo,
		watchlistRepo: watchlistRepo,
		pageRadius:    pageRadius,
	}
}

// Create validates the form and stores a new active listing owned by author.
func (s *listingService) Create(ctx context.Context, author *model.User, form ListingForm) (*model.Listing, error) {
	if err := policy.RequireAuthenticated(author); err != nil {
		return nil, err
	}
	fields, err := form.Validate()
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, fields.CategoryID); err != nil {
		return nil, err
	}

	listing := &model.Listing{
		Title:       fields.Title,
		Description: fields.Description,
		StartingBid: fields.StartingBid,
		ImageURL:    fields.ImageURL,
		CategoryID:  fields.CategoryID,
		AuthorID:    author.ID,
		Active:      true,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	logger.Info("listing created", map[string]any{"listing_id": listing.ID, "author_id": author.ID})
	return listing, nil
}

// Update applies an author's edit. The stored starting bid always wins over the submitted one.
func (s *listingService) Update(ctx context.Context, listingID uint, actor *model.User, form ListingForm) (*model.Listing, error) {
	listing, err := s.GetForEdit(ctx, listingID, actor)
	if err != nil {
		return nil, err
	}

	form.StartingBid = listing.StartingBid.String()
	fields, err := form.Validate()
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, fields.CategoryID); err != nil {
		return nil, err
	}

	listing.Title = fields.Title
	listing.Description = fields.Description
	listing.ImageURL = fields.ImageURL
	listing.CategoryID = fields.CategoryID
	listing.Category = nil
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update listing %d: %w", listingID, err)
	}
	return listing, nil
}

// GetForEdit loads a listing for its author.
func (s *listingService) GetForEdit(ctx context.Context, listingID uint, actor *model.User) (*model.Listing, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	listing, err := s.find(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireListingAuthor(actor, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Detail assembles the listing page for viewer, who may be nil.
func (s *listingService) Detail(ctx context.Context, listingID uint, viewer *model.User) (*ListingDetail, error) {
	listing, err := s.find(ctx, listingID)
	if err != nil {
		return nil, err
	}

	max, err := s.auctionRepo.MaxBidAmount(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("max bid: %w", err)
	}
	bids, err := s.auctionRepo.ListBids(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	comments, err := s.commentRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	detail := &ListingDetail{
		Listing:      listing,
		CurrentPrice: CurrentPrice(listing.StartingBid, max),
		BidCount:     len(bids),
		Bids:         bids,
		Comments:     comments,
		IsAuthor:     policy.IsAuthor(viewer, listing),
	}
	if viewer != nil && viewer.ID != 0 {
		watching, err := s.watchlistRepo.Exists(ctx, viewer.ID, listingID)
		if err != nil {
			return nil, fmt.Errorf("watchlist lookup: %w", err)
		}
		detail.InWatchlist = watching
	}
	return detail, nil
}

// ListActive returns a page of open listings, newest first.
func (s *listingService) ListActive(ctx context.Context, req pagination.Request) (pagination.Page[ListingCard], error) {
	listings, total, err := s.listingRepo.ListActive(ctx, req.Offset(), req.Size)
	if err != nil {
		return pagination.Page[ListingCard]{}, fmt.Errorf("list active listings: %w", err)
	}
	return s.cards(ctx, listings, req, total)
}

// ListByCategory returns a page of open listings in category.
func (s *listingService) ListByCategory(ctx context.Context, category *model.Category, req pagination.Request) (pagination.Page[ListingCard], error) {
	listings, total, err := s.listingRepo.ListActiveByCategory(ctx, category.ID, req.Offset(), req.Size)
	if err != nil {
		return pagination.Page[ListingCard]{}, fmt.Errorf("list category %s: %w", category.Slug, err)
	}
	return s.cards(ctx, listings, req, total)
}

// Watchlist returns a page of the open listings user watches.
func (s *listingService) Watchlist(ctx context.Context, user *model.User, req pagination.Request) (pagination.Page[ListingCard], error) {
	if err := policy.RequireAuthenticated(user); err != nil {
		return pagination.Page[ListingCard]{}, err
	}
	listings, total, err := s.listingRepo.ListWatched(ctx, user.ID, req.Offset(), req.Size)
	if err != nil {
		return pagination.Page[ListingCard]{}, fmt.Errorf("list watchlist: %w", err)
	}
	return s.cards(ctx, listings, req, total)
}

func (s *listingService) cards(ctx context.Context, listings []model.Listing, req pagination.Request, total int64) (pagination.Page[ListingCard], error) {
	if !req.InRange(total) {
		return pagination.Page[ListingCard]{}, errors.ErrPageNotFound
	}
	ids := make([]uint, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	maxima, err := s.auctionRepo.MaxBidAmounts(ctx, ids)
	if err != nil {
		return pagination.Page[ListingCard]{}, fmt.Errorf("max bids: %w", err)
	}

	page := pagination.Paginate(listings, req, total, s.pageRadius)
	return pagination.Map(page, func(l model.Listing) ListingCard {
		max, ok := maxima[l.ID]
		return ListingCard{
			Listing:      l,
			CurrentPrice: CurrentPrice(l.StartingBid, decimal.NullDecimal{Decimal: max, Valid: ok}),
		}
	}), nil
}

func (s *listingService) find(ctx context.Context, listingID uint) (*model.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, notFound(err, errors.ErrListingNotFound)
	}
	return listing, nil
}

func (s *listingService) checkCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Field("category_id", "Select a valid choice. That choice is not one of the available choices.")
		}
		return fmt.Errorf("load category: %w", err)
	}
	return nil
}
