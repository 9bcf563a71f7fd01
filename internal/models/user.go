package models

import "time"

type User struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"default:''" json:"-"` // empty for Google-auth accounts
	GoogleID     string `gorm:"index" json:"-"`
	Avatar       string `json:"avatar"`

	IsVerified    bool       `gorm:"default:false" json:"is_verified"`
	OTPCode       string     `json:"-"`
	OTPExpiresAt  *time.Time `json:"-"`
	OTPAttempts   int        `gorm:"default:0" json:"-"`
	OTPLastSentAt *time.Time `json:"-"`

	Role        UserRole   `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CoinBalance int64      `gorm:"default:0" json:"coin_balance"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// IsGoogleAccount reports whether the user authenticates through Google
// and therefore holds no local password.
func (u *User) IsGoogleAccount() bool {
	return u.GoogleID != "" && u.PasswordHash == ""
}
