package models

import "time"

// RedemptionCoupon is bought with coins and marked used exactly once.
type RedemptionCoupon struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Code   string `gorm:"uniqueIndex;not null" json:"code"`

	Description     string `json:"description"`
	DiscountPercent int    `gorm:"not null" json:"discount_percent"`
	CoinsRequired   int64  `gorm:"not null" json:"coins_required"`

	IsActive  bool       `gorm:"default:true" json:"is_active"`
	IsUsed    bool       `gorm:"default:false" json:"is_used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
}
