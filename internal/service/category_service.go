package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"auctions/internal/cache"
	"auctions/internal/errors"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/policy"
	"auctions/internal/repository"
)

const (
	categoryListCacheKey = "categories:all"
	categoryCacheTTL     = 10 * time.Minute
)

// CategoryService handles category operations.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, actor *model.User, form CategoryForm) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{
		repo:  repo,
		cache: cache,
	}
}

// List returns every category, served from cache when possible.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryListCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	_ = s.cache.SetJSON(ctx, categoryListCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// GetBySlug finds a category by slug.
func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, errors.ErrCategoryNotFound)
	}
	return category, nil
}

// Create derives a slug from the name and stores the category.
// Empty slugs are validation failures; reserved or duplicate slugs are conflicts.
func (s *categoryService) Create(ctx context.Context, actor *model.User, form CategoryForm) (*model.Category, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	name, err := form.Validate()
	if err != nil {
		return nil, err
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, errors.Field("name", "Enter a name containing letters or numbers.")
	}
	if slug == ReservedSlug {
		return nil, errors.ErrSlugReserved
	}
	exists, err := s.repo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return nil, errors.ErrSlugTaken
	}

	category := &model.Category{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, category); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	logger.Info("category created", map[string]any{"category_id": category.ID, "slug": slug})
	return category, nil
}
