package repositories

import (
	"errors"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification type constants.
const (
	NotificationTypeBuyRequest     = "buy_request"
	NotificationTypeOfferReceived  = "offer_received"
	NotificationTypeOfferAccepted  = "offer_accepted"
	NotificationTypeOfferRejected  = "offer_rejected"
	NotificationTypeCounterOffer   = "counter_offer"
	NotificationTypePaymentDone    = "payment_done"
	NotificationTypeCoinsAwarded   = "coins_awarded"
	NotificationTypeItemApproved   = "item_approved"
	NotificationTypeItemRejected   = "item_rejected"
	NotificationTypeAccountWarning = "account_warning"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	// FindUserNotifications returns live (unexpired) notifications only.
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	DeleteUserNotifications(userID string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

type NotificationCriteria struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.ExpiresAt.IsZero() {
		notification.ExpiresAt = time.Now().Add(models.NotificationTTL)
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now())

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	// Unread entries surface first, each group newest to oldest.
	var notifications []models.Notification
	err := query.Order("is_read ASC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND expires_at > ?", userID, false, time.Now()).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteUserNotifications(userID string) error {
	return r.db.Delete(&models.Notification{}, "user_id = ?", userID).Error
}
