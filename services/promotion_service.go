package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homestay-backend/models"

	"gorm.io/gorm"
)

var (
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrPromotionExhausted = errors.New("promotion usage limit reached")
)

// PromotionService wraps *gorm.DB with the persistence operations for
// promotion codes.
type PromotionService struct {
	DB *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{DB: db}
}

// GetActiveByCode returns the promotion only while the current date falls
// inside its validity window. A matching code outside the window behaves
// like a missing one.
func (s *PromotionService) GetActiveByCode(ctx context.Context, code string) (models.Promotion, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	today := time.Now().Format("2006-01-02")

	var promo models.Promotion
	err := s.DB.WithContext(ctx).
		Where("code = ? AND start_date <= ? AND end_date >= ?", code, today, today).
		First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Promotion{}, ErrPromotionNotFound
		}
		return models.Promotion{}, fmt.Errorf("failed to load promotion: %w", err)
	}
	return promo, nil
}

func (s *PromotionService) Create(ctx context.Context, promo *models.Promotion) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(promo).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

// redeem increments usage_count, guarded by the usage cap, on the given
// handle. It runs on tx so callers can tie the redemption to the write that
// justifies it (a booking insert).
func redeemPromotion(tx *gorm.DB, code string) error {
	result := tx.Model(&models.Promotion{}).
		Where("code = ? AND usage_count < usage_limit", code).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromotionExhausted
	}
	return nil
}
