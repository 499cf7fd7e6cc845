package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"shopkart/internal/model"
	"shopkart/internal/repository"
	"shopkart/internal/storage"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productService implements ProductService.
type productService struct {
	products repository.ProductRepository
	store    storage.ObjectStore
	prefix   string
	logger   zerolog.Logger
}

// NewProductService creates a new product service. prefix is the object
// storage path prefix for uploaded photos.
func NewProductService(
	products repository.ProductRepository,
	store storage.ObjectStore,
	prefix string,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		products: products,
		store:    store,
		prefix:   prefix,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// Create uploads the photos to object storage and stores the product.
func (s *productService) Create(ctx context.Context, actor *model.User, form ProductForm, photos []PhotoUpload) (*model.Product, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, model.Validation("Please provide product photos")
	}
	if len(photos) > model.MaxProductPhotos {
		return nil, model.Validation("Maximum five photos can be uploaded for a product")
	}

	categoryID, err := primitive.ObjectIDFromHex(form.CategoryID)
	if err != nil {
		return nil, model.Validation("Invalid category id")
	}

	productID := primitive.NewObjectID()
	stored, err := s.uploadPhotos(ctx, productID, photos)
	if err != nil {
		return nil, err
	}

	stock := 0
	if form.Stock != nil {
		stock = *form.Stock
	}

	product := &model.Product{
		ID:          productID,
		Name:        strings.ToLower(strings.TrimSpace(form.Name)),
		Price:       form.Price,
		Description: strings.ToLower(strings.TrimSpace(form.Description)),
		Photos:      stored,
		Brand:       strings.ToLower(strings.TrimSpace(form.Brand)),
		Stock:       stock,
		CategoryID:  categoryID,
		AddedBy:     model.AuditRecord{UserID: actor.ID, Role: actor.Role},
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.Hex()).
		Int("photo_count", len(stored)).
		Msg("product created")

	return product, nil
}

// Update applies field changes; replacement photos delete the old ones from
// object storage first.
func (s *productService) Update(ctx context.Context, actor *model.User, id primitive.ObjectID, form ProductForm, photos []PhotoUpload) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(photos) > model.MaxProductPhotos {
		return nil, model.Validation("Maximum five photos can be uploaded for a product")
	}

	if len(photos) > 0 {
		for _, photo := range product.Photos {
			if err := s.store.Delete(ctx, photo.ID); err != nil {
				s.logger.Warn().Err(err).Str("key", photo.ID).Msg("failed to delete replaced photo")
			}
		}
		stored, err := s.uploadPhotos(ctx, product.ID, photos)
		if err != nil {
			return nil, err
		}
		product.Photos = stored
	}

	if form.Name != "" {
		product.Name = strings.ToLower(strings.TrimSpace(form.Name))
	}
	if form.Price != 0 {
		if form.Price < model.MinProductPrice {
			return nil, model.Validation(fmt.Sprintf("Products worth less than %d can't be listed", model.MinProductPrice))
		}
		product.Price = form.Price
	}
	if form.Description != "" {
		product.Description = strings.ToLower(strings.TrimSpace(form.Description))
	}
	if form.Brand != "" {
		product.Brand = strings.ToLower(strings.TrimSpace(form.Brand))
	}
	if form.Stock != nil {
		if *form.Stock < 0 {
			return nil, model.Validation("Stock should be a non negative integer")
		}
		product.Stock = *form.Stock
	}
	if form.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(form.CategoryID)
		if err != nil {
			return nil, model.Validation("Invalid category id")
		}
		product.CategoryID = categoryID
	}
	product.LastUpdatedBy = &model.AuditRecord{UserID: actor.ID, Role: actor.Role}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get retrieves a product by id.
func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// List retrieves products for the given request query parameters.
func (s *productService) List(ctx context.Context, params url.Values) ([]model.Product, error) {
	filter := repository.BuildFilter(params, repository.DefaultPageSize)

	products, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int64("skip", filter.Skip).
		Int64("limit", filter.Limit).
		Msg("products listed")

	return products, nil
}

// Delete removes the product and its stored photos.
func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, photo := range product.Photos {
		if err := s.store.Delete(ctx, photo.ID); err != nil {
			s.logger.Warn().Err(err).Str("key", photo.ID).Msg("failed to delete product photo")
		}
	}

	return s.products.Delete(ctx, id)
}

// Review adds or replaces the caller's single review and recomputes the
// aggregate rating.
func (s *productService) Review(ctx context.Context, actor *model.User, id primitive.ObjectID, req *model.ReviewRequest) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	review := model.Review{
		UserID:  actor.ID,
		Name:    actor.FirstName + " " + actor.LastName,
		Rating:  req.Rating,
		Comment: strings.ToLower(strings.TrimSpace(req.Comment)),
	}

	replaced := false
	for i, existing := range product.Reviews {
		if existing.UserID == actor.ID {
			product.Reviews[i] = review
			replaced = true
			break
		}
	}
	if !replaced {
		product.Reviews = append(product.Reviews, review)
	}
	product.RecalculateRating()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.Hex()).
		Str("user_id", actor.ID.Hex()).
		Bool("replaced", replaced).
		Msg("review saved")

	return product, nil
}

func (s *productService) uploadPhotos(ctx context.Context, productID primitive.ObjectID, photos []PhotoUpload) ([]model.Photo, error) {
	stored := make([]model.Photo, 0, len(photos))
	for i, photo := range photos {
		key := fmt.Sprintf("%sproduct/%s/photo_%d", s.prefix, productID.Hex(), i+1)
		url, err := s.store.Upload(ctx, key, photo.Body, photo.ContentType)
		if err != nil {
			return nil, model.External("Failed to upload product photo")
		}
		stored = append(stored, model.Photo{ID: key, URL: url})
	}
	return stored, nil
}

func validateForm(form ProductForm) error {
	if form.Name == "" || form.Description == "" || form.Brand == "" || form.CategoryID == "" {
		return model.Validation("Please provide all the details")
	}
	if form.Price < model.MinProductPrice {
		return model.Validation(fmt.Sprintf("Products worth less than %d can't be listed", model.MinProductPrice))
	}
	if form.Stock != nil && *form.Stock < 0 {
		return model.Validation("Stock should be a non negative integer")
	}
	return nil
}
