package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auctions/internal/errors"
	"auctions/internal/events"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

// CloseResult describes the outcome of closing, or previewing the close of, an auction.
type CloseResult struct {
	Listing    *model.Listing      `json:"listing"`
	Winner     *model.User         `json:"winner"`
	WinningBid decimal.NullDecimal `json:"winning_bid"`
	// Closed is true only when this call moved the listing from active to inactive.
	Closed bool `json:"closed"`
}

// AuctionService owns bidding and closing.
type AuctionService interface {
	CurrentPrice(ctx context.Context, listing *model.Listing) (decimal.Decimal, error)
	MaxBid(ctx context.Context, listingID uint) (decimal.Decimal, error)
	PlaceBid(ctx context.Context, listingID uint, bidder *model.User, amount decimal.Decimal) (*model.Bid, error)
	PreviewClose(ctx context.Context, listingID uint, requester *model.User) (*CloseResult, error)
	Close(ctx context.Context, listingID uint, requester *model.User) (*CloseResult, error)
}

type auctionService struct {
	repo      repository.AuctionRepository
	userRepo  repository.UserRepository
	publisher events.Publisher
}

// NewAuctionService creates a new auction service.
func NewAuctionService(repo repository.AuctionRepository, userRepo repository.UserRepository, publisher events.Publisher) AuctionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &auctionService{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CurrentPrice returns the highest bid on the listing or its starting bid.
func (s *auctionService) CurrentPrice(ctx context.Context, listing *model.Listing) (decimal.Decimal, error) {
	max, err := s.repo.MaxBidAmount(ctx, listing.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("max bid for listing %d: %w", listing.ID, err)
	}
	return CurrentPrice(listing.StartingBid, max), nil
}

// MaxBid returns the highest bid on the listing, zero when there are none.
func (s *auctionService) MaxBid(ctx context.Context, listingID uint) (decimal.Decimal, error) {
	max, err := s.repo.MaxBidAmount(ctx, listingID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("max bid for listing %d: %w", listingID, err)
	}
	return MaxBidOrZero(max), nil
}

// PlaceBid records a bid when it beats the current maximum and the starting bid.
// The listing row stays locked from the maximum check until the holder update commits.
func (s *auctionService) PlaceBid(ctx context.Context, listingID uint, bidder *model.User, amount decimal.Decimal) (*model.Bid, error) {
	if err := policy.RequireAuthenticated(bidder); err != nil {
		return nil, err
	}

	var bid *model.Bid
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.AuctionRepository) error {
		listing, err := txRepo.FindListingForUpdate(ctx, listingID)
		if err != nil {
			return notFound(err, errors.ErrListingNotFound)
		}
		if !listing.Active {
			return errors.ErrListingClosed
		}

		max, err := txRepo.MaxBidAmount(ctx, listingID)
		if err != nil {
			return fmt.Errorf("max bid: %w", err)
		}
		if !AcceptsBid(amount, listing.StartingBid, max) {
			return errors.ErrBidTooLow
		}

		bid = &model.Bid{
			Amount:    amount,
			UserID:    bidder.ID,
			ListingID: listingID,
		}
		if err := txRepo.CreateBid(ctx, bid); err != nil {
			return fmt.Errorf("create bid: %w", err)
		}
		if err := txRepo.SetMaxBidder(ctx, listingID, bidder.ID); err != nil {
			return fmt.Errorf("update max bidder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("bid accepted", map[string]any{
		"listing_id": listingID,
		"user_id":    bidder.ID,
		"amount":     amount.String(),
	})
	s.publish(ctx, events.New(events.TypeBidPlaced, events.BidPlaced{
		ListingID: listingID,
		BidID:     bid.ID,
		UserID:    bidder.ID,
		Amount:    amount,
	}))
	return bid, nil
}

// PreviewClose shows the author who would win if the auction closed now.
func (s *auctionService) PreviewClose(ctx context.Context, listingID uint, requester *model.User) (*CloseResult, error) {
	if err := policy.RequireAuthenticated(requester); err != nil {
		return nil, err
	}

	listing, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		return nil, notFound(err, errors.ErrListingNotFound)
	}
	if err := policy.RequireListingAuthor(requester, listing); err != nil {
		return nil, err
	}

	max, err := s.repo.MaxBidAmount(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("max bid: %w", err)
	}
	winner, err := s.winner(ctx, listing)
	if err != nil {
		return nil, err
	}
	return &CloseResult{Listing: listing, Winner: winner, WinningBid: max}, nil
}

// Close ends the auction. Closing an already closed listing succeeds without changing anything.
func (s *auctionService) Close(ctx context.Context, listingID uint, requester *model.User) (*CloseResult, error) {
	if err := policy.RequireAuthenticated(requester); err != nil {
		return nil, err
	}

	result := &CloseResult{}
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.AuctionRepository) error {
		listing, err := txRepo.FindListingForUpdate(ctx, listingID)
		if err != nil {
			return notFound(err, errors.ErrListingNotFound)
		}
		if err := policy.RequireListingAuthor(requester, listing); err != nil {
			return err
		}

		max, err := txRepo.MaxBidAmount(ctx, listingID)
		if err != nil {
			return fmt.Errorf("max bid: %w", err)
		}
		result.WinningBid = max

		if listing.Active {
			if err := txRepo.MarkClosed(ctx, listingID); err != nil {
				return fmt.Errorf("close listing: %w", err)
			}
			listing.Active = false
			result.Closed = true
		}
		result.Listing = listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	winner, err := s.winner(ctx, result.Listing)
	if err != nil {
		return nil, err
	}
	result.Winner = winner

	if result.Closed {
		logger.Info("auction closed", map[string]any{
			"listing_id": listingID,
			"winner_id":  result.Listing.MaxBidderID,
		})
		s.publish(ctx, events.New(events.TypeAuctionClosed, events.AuctionClosed{
			ListingID:     listingID,
			AuthorID:      result.Listing.AuthorID,
			WinnerID:      result.Listing.MaxBidderID,
			WinningAmount: result.WinningBid,
		}))
	}
	return result, nil
}

func (s *auctionService) winner(ctx context.Context, listing *model.Listing) (*model.User, error) {
	if listing.MaxBidderID == nil {
		return nil, nil
	}
	user, err := s.userRepo.FindByID(ctx, *listing.MaxBidderID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load winner: %w", err)
	}
	return user, nil
}

func (s *auctionService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("publish event failed", map[string]any{
			"event_type": event.Type,
			"event_id":   event.ID,
			"error":      err.Error(),
		})
	}
}

// notFound maps a missing record to target and wraps anything else.
func notFound(err, target error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
