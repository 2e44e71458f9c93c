package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homestay-backend/models"

	"gorm.io/gorm"
)

var ErrInvalidDates = errors.New("check-out must be after check-in")

// BookingService wraps *gorm.DB with the booking flow. A booking that
// carries a promo code redeems it in the same transaction as the insert, so
// usage_count never moves without a booking to show for it.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	UserID    string
	RoomID    uint
	CheckIn   time.Time
	CheckOut  time.Time
	PromoCode string
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	if !in.CheckOut.After(in.CheckIn) {
		return models.Booking{}, ErrInvalidDates
	}
	nights := int(in.CheckOut.Sub(in.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		total := room.Price * float64(nights)

		if in.PromoCode != "" {
			today := time.Now().Format("2006-01-02")
			var promo models.Promotion
			err := tx.Where("code = ? AND start_date <= ? AND end_date >= ?", in.PromoCode, today, today).
				First(&promo).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPromotionNotFound
				}
				return fmt.Errorf("failed to load promotion: %w", err)
			}
			if err := redeemPromotion(tx, in.PromoCode); err != nil {
				return err
			}
			total = promo.Apply(total)
		}

		booking = models.Booking{
			UserID:     in.UserID,
			RoomID:     in.RoomID,
			CheckIn:    in.CheckIn,
			CheckOut:   in.CheckOut,
			TotalPrice: total,
			PromoCode:  in.PromoCode,
			Status:     models.BookingPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var bookings []models.Booking
	err := s.DB.WithContext(ctx).Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return bookings, nil
}
