package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

type Promotion struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"size:64;uniqueIndex" json:"code"`
	DiscountType   string         `gorm:"size:20;column:discount_type" json:"discountType"`
	DiscountAmount float64        `gorm:"column:discount_amount" json:"discountAmount"`
	StartDate      datatypes.Date `gorm:"column:start_date" json:"startDate"`
	EndDate        datatypes.Date `gorm:"column:end_date" json:"endDate"`
	UsageLimit     int            `gorm:"column:usage_limit" json:"usageLimit"`
	UsageCount     int            `gorm:"column:usage_count;default:0" json:"usageCount"`

	CreatedAt time.Time `json:"created_at"`
}

func (Promotion) TableName() string { return "promotions" }

// ActiveAt reports whether t falls inside the validity window, inclusive on
// both ends. End date comparison is against the end of that calendar day.
func (p Promotion) ActiveAt(t time.Time) bool {
	start := time.Time(p.StartDate)
	end := time.Time(p.EndDate).Add(24*time.Hour - time.Nanosecond)
	return !t.Before(start) && !t.After(end)
}

// Apply returns the price after the discount has been taken off. The result
// never drops below zero.
func (p Promotion) Apply(price float64) float64 {
	var discounted float64
	switch p.DiscountType {
	case DiscountPercent:
		discounted = price * (1 - p.DiscountAmount/100)
	case DiscountFixed:
		discounted = price - p.DiscountAmount
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
