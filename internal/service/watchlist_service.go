package service

import (
	"context"
	"fmt"

	"auctions/internal/errors"
	"auctions/internal/model"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

// WatchlistService flips watchlist membership.
type WatchlistService interface {
	Toggle(ctx context.Context, user *model.User, listingID uint) (bool, error)
}

type watchlistService struct {
	repo        repository.WatchlistRepository
	listingRepo repository.ListingRepository
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(repo repository.WatchlistRepository, listingRepo repository.ListingRepository) WatchlistService {
	return &watchlistService{repo: repo, listingRepo: listingRepo}
}

// Toggle removes the listing from the user's watchlist when present, adds it otherwise,
// and returns the resulting membership.
func (s *watchlistService) Toggle(ctx context.Context, user *model.User, listingID uint) (bool, error) {
	if err := policy.RequireAuthenticated(user); err != nil {
		return false, err
	}
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return false, notFound(err, errors.ErrListingNotFound)
	}

	var watching bool
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.WatchlistRepository) error {
		exists, err := txRepo.Exists(ctx, user.ID, listingID)
		if err != nil {
			return err
		}
		if exists {
			watching = false
			return txRepo.Remove(ctx, user.ID, listingID)
		}
		watching = true
		return txRepo.Add(ctx, user.ID, listingID)
	})
	if err != nil {
		return false, fmt.Errorf("toggle watchlist: %w", err)
	}
	return watching, nil
}
