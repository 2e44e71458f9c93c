package models

import (
	"time"
)

// Role codes stored in users.role_id.
const (
	RoleAdmin = "AD"
	RoleUser  = "US"
)

type User struct {
	UserID     string  `gorm:"primaryKey;size:50;column:user_id" json:"userId"`
	FullName   string  `gorm:"size:255;column:full_name" json:"fullName"`
	RoleID     string  `gorm:"size:10;column:role_id" json:"roleId"`
	Password   string  `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	Gmail      string  `gorm:"size:255;uniqueIndex" json:"gmail"`
	Sdt        string  `gorm:"size:20" json:"sdt"`
	AvatarURL  string  `gorm:"type:longtext;column:avatar_url" json:"avatarUrl"`
	Token      *string `gorm:"size:64;index" json:"-"` // reset token, cleared after use
	IsVerified bool    `gorm:"column:is_verified;default:false" json:"isVerified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

var rolePermissions = map[string][]string{
	RoleAdmin: {
		"roomManagement.view",
		"roomManagement.create",
		"roomManagement.edit",
		"roomManagement.delete",
		"promotionManagement.view",
		"promotionManagement.create",
	},
	RoleUser: {},
}

// Can reports whether the user's role grants the given permission.
// View-level differences (admin links etc.) go through this, not through
// role-string comparisons scattered around the handlers.
func (u User) Can(perm string) bool {
	for _, p := range rolePermissions[u.RoleID] {
		if p == perm {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool { return u.RoleID == RoleAdmin }
