package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homestay-backend/models"

	"gorm.io/gorm"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomService wraps *gorm.DB with the persistence operations for rooms,
// their detail images and the rating aggregates derived from reviews.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type ratingRow struct {
	RoomID      uint
	AvgRating   float64
	ReviewCount int
}

// attachRatings recomputes AverageRating / ReviewCount for the given rooms
// from the reviews table in one grouped query.
func (s *RoomService) attachRatings(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	var rows []ratingRow
	err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Select("room_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Where("room_id IN ?", ids).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load rating aggregates: %w", err)
	}

	byRoom := make(map[uint]ratingRow, len(rows))
	for _, row := range rows {
		byRoom[row.RoomID] = row
	}
	for i := range rooms {
		if row, ok := byRoom[rooms[i].ID]; ok {
			rooms[i].AverageRating = row.AvgRating
			rooms[i].ReviewCount = row.ReviewCount
		}
	}
	return nil
}

// Filter returns all rooms matching the given criteria. Name and amenities
// match as case-insensitive substrings; the price bounds are inclusive.
func (s *RoomService) Filter(ctx context.Context, name string, minPrice, maxPrice float64, amenities string) ([]models.Room, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	query := s.DB.WithContext(ctx).Preload("Images").
		Where("price BETWEEN ? AND ?", minPrice, maxPrice)
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if amenities != "" {
		query = query.Where("LOWER(amenities) LIKE ?", "%"+strings.ToLower(amenities)+"%")
	}

	var rooms []models.Room
	if err := query.Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to filter rooms: %w", err)
	}
	if err := s.attachRatings(ctx, rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Preload("Images").Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if err := s.attachRatings(ctx, rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (models.Room, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("Images").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room %d: %w", id, err)
	}

	rooms := []models.Room{room}
	if err := s.attachRatings(ctx, rooms); err != nil {
		return models.Room{}, err
	}
	return rooms[0], nil
}

func (s *RoomService) GetByName(ctx context.Context, name string) (models.Room, error) {
	ctx, cancel := scoped(ctx)
	defer cancel()

	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("Images").First(&room, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room %q: %w", name, err)
	}

	rooms := []models.Room{room}
	if err := s.attachRatings(ctx, rooms); err != nil {
		return models.Room{}, err
	}
	return rooms[0], nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update rewrites the room row and replaces the detail-image list
// (delete + reinsert) inside one transaction, so a failure partway does not
// leave the room with half its images.
func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]any{
			"name":        room.Name,
			"description": room.Description,
			"price":       room.Price,
			"amenities":   room.Amenities,
			"image_url":   room.ImageURL,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRoomNotFound
		}

		if err := tx.Where("room_id = ?", room.ID).Delete(&models.RoomImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete room images: %w", err)
		}
		if len(room.Images) > 0 {
			for i := range room.Images {
				room.Images[i].ID = 0
				room.Images[i].RoomID = room.ID
			}
			if err := tx.Create(&room.Images).Error; err != nil {
				return fmt.Errorf("failed to insert room images: %w", err)
			}
		}
		return nil
	})
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := scoped(ctx)
	defer cancel()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete room images: %w", err)
		}
		result := tx.Delete(&models.Room{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}
