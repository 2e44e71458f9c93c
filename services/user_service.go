package services

import (
	"context"
	"errors"
	"fmt"

	"homestay-backend/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserService wraps *gorm.DB with the persistence operations for users,
// including the reset-token lifecycle.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetByID(ctx context.Context, userID string) (models.User, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "gmail = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to load user by email: %w", err)
	}
	return user, nil
}

func (s *UserService) ExistsByID(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user id: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("gmail = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateProfile persists the profile fields only. Password and reset-token
// columns are not touched here.
func (s *UserService) UpdateProfile(ctx context.Context, user models.User) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]any{
			"full_name":  user.FullName,
			"gmail":      user.Gmail,
			"sdt":        user.Sdt,
			"avatar_url": user.AvatarURL,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) SaveResetToken(ctx context.Context, userID, token string) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("token", token)
	if result.Error != nil {
		return fmt.Errorf("failed to save reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ValidateResetToken returns the user currently holding the token. A cleared
// or never-issued token yields ErrUserNotFound.
func (s *UserService) ValidateResetToken(ctx context.Context, token string) (models.User, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to validate reset token: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearToken invalidates the reset token once it has been consumed.
func (s *UserService) ClearToken(ctx context.Context, userID string) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("token", nil).Error; err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}
