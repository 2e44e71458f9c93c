package models

import (
	"time"
)

type Room struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `json:"price"`
	Amenities   string  `gorm:"size:500" json:"amenities"`
	ImageURL    string  `gorm:"size:500;column:image_url" json:"imageUrl"`

	Images []RoomImage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"detailImages"`

	// Recomputed from the reviews relation on every read, never stored on rooms.
	AverageRating float64 `gorm:"-" json:"averageRating"`
	ReviewCount   int     `gorm:"-" json:"reviewCount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoomImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoomID   uint   `gorm:"index;column:room_id" json:"roomId"`
	ImageURL string `gorm:"size:500;column:image_url" json:"imageUrl"`
}

func (RoomImage) TableName() string { return "room_images" }

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"index;column:room_id" json:"roomId"`
	UserID    string    `gorm:"size:50;column:user_id" json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
