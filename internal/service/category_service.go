package service

import (
	"context"
	"strings"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// categoryService implements CategoryService.
type categoryService struct {
	categories repository.CategoryRepository
	logger     zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		logger:     logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, actor *model.User, name string) (*model.Category, error) {
	category := &model.Category{
		Name:    strings.ToLower(strings.TrimSpace(name)),
		AddedBy: model.AuditRecord{UserID: actor.ID, Role: actor.Role},
	}

	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.Hex()).Str("name", category.Name).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor *model.User, id primitive.ObjectID, name string) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.ToLower(strings.TrimSpace(name))
	category.LastUpdatedBy = &model.AuditRecord{UserID: actor.ID, Role: actor.Role}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.categories.Delete(ctx, id)
}
