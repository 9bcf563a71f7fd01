package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

type NotificationDTO struct {
	ID             string                    `json:"id"`
	SenderID       string                    `json:"sender_id,omitempty"`
	Type           string                    `json:"type"`
	Title          string                    `json:"title"`
	Message        string                    `json:"message,omitempty"`
	ItemID         *string                   `json:"item_id,omitempty"`
	TransactionID  *string                   `json:"transaction_id,omitempty"`
	ActionRequired models.NotificationAction `json:"action_required"`
	IsRead         bool                      `json:"is_read"`
	ReadAt         *time.Time                `json:"read_at,omitempty"`
	ExpiresAt      time.Time                 `json:"expires_at"`
	CreatedAt      time.Time                 `json:"created_at"`
}

type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page"`
	PageSize   int  `form:"page_size"`
}

type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
	Pagination    Pagination        `json:"pagination"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

func ToNotificationDTO(n *models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID,
		SenderID:       n.SenderID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		ItemID:         n.ItemID,
		TransactionID:  n.TransactionID,
		ActionRequired: n.ActionRequired,
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		ExpiresAt:      n.ExpiresAt,
		CreatedAt:      n.CreatedAt,
	}
}
