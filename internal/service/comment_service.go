package service

import (
	"context"
	"fmt"

	"auctions/internal/errors"
	"auctions/internal/model"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

// CommentService appends comments to listings.
type CommentService interface {
	Add(ctx context.Context, author *model.User, listingID uint, form CommentForm) (*model.Comment, error)
}

type commentService struct {
	repo        repository.CommentRepository
	listingRepo repository.ListingRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(repo repository.CommentRepository, listingRepo repository.ListingRepository) CommentService {
	return &commentService{repo: repo, listingRepo: listingRepo}
}

// Add stores a comment from author on the listing.
func (s *commentService) Add(ctx context.Context, author *model.User, listingID uint, form CommentForm) (*model.Comment, error) {
	if err := policy.RequireAuthenticated(author); err != nil {
		return nil, err
	}
	text, err := form.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, notFound(err, errors.ErrListingNotFound)
	}

	comment := &model.Comment{
		Text:      text,
		AuthorID:  author.ID,
		ListingID: listingID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = author
	return comment, nil
}
