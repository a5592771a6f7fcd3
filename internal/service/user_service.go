package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auctions/internal/cache"
	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetForEdit(ctx context.Context, actor *model.User, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, actor *model.User, username string, form ProfileForm) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetByID loads a user, served from cache when possible. The cached copy carries no password hash.
func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errors.ErrUserNotFound)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, errors.ErrUserNotFound)
	}
	return user, nil
}

// GetForEdit loads a profile for its owner.
func (s *userService) GetForEdit(ctx context.Context, actor *model.User, username string) (*model.User, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireSelf(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets a user edit their own name, email and avatar.
func (s *userService) UpdateProfile(ctx context.Context, actor *model.User, username string, form ProfileForm) (*model.User, error) {
	user, err := s.GetForEdit(ctx, actor, username)
	if err != nil {
		return nil, err
	}
	fields, err := form.Validate()
	if err != nil {
		return nil, err
	}

	user.FirstName = fields.FirstName
	user.LastName = fields.LastName
	user.Email = fields.Email
	user.AvatarURL = fields.AvatarURL
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	logger.Info("profile updated", map[string]any{"user_id": user.ID})
	return user, nil
}
