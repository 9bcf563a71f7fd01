package models

import "time"

// NotificationTTL is the uniform logical lifetime of a notification.
// Expired rows are hidden from reads, never deleted.
const NotificationTTL = 30 * 24 * time.Hour

type Notification struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"` // recipient
	SenderID string `gorm:"type:uuid" json:"sender_id"`

	Type    string `gorm:"not null" json:"type"` // "buy_request", "offer_received", ...
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`

	ItemID        *string `gorm:"type:uuid" json:"item_id,omitempty"`
	TransactionID *string `gorm:"type:uuid" json:"transaction_id,omitempty"`

	ActionRequired NotificationAction `gorm:"type:varchar(20);default:'none'" json:"action_required"`

	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
}
