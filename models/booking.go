package models

import (
	"time"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"size:50;index;column:user_id" json:"userId"`
	RoomID     uint       `gorm:"index;column:room_id" json:"roomId"`
	CheckIn    time.Time  `gorm:"column:check_in" json:"checkIn"`
	CheckOut   time.Time  `gorm:"column:check_out" json:"checkOut"`
	TotalPrice float64    `gorm:"column:total_price" json:"totalPrice"`
	PromoCode  string     `gorm:"size:64;column:promo_code" json:"promoCode,omitempty"`
	Status     string     `gorm:"size:20;default:pending" json:"status"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
