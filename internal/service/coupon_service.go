package service

import (
	"context"
	"strings"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// couponService implements CouponService.
type couponService struct {
	coupons repository.CouponRepository
	logger  zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(coupons repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		coupons: coupons,
		logger:  logger.With().Str("service", "coupon").Logger(),
	}
}

func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	coupon := &model.Coupon{
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Discount: req.Discount,
		IsActive: true,
	}

	if err := s.coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.Info().Str("coupon_id", coupon.ID.Hex()).Str("code", coupon.Code).Msg("coupon created")
	return coupon, nil
}

func (s *couponService) Deactivate(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	return s.coupons.Deactivate(ctx, id)
}

func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *couponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.coupons.Delete(ctx, id)
}
