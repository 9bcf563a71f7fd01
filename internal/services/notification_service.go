package services

import (
	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"
)

// NotificationService exposes the per-user mailbox. Expired entries
// are hidden by the repository, never deleted.
type NotificationService interface {
	List(userID string, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (*dto.UnreadCountResponse, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(userID string, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, repositories.NotificationCriteria{
		UnreadOnly: req.UnreadOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	unread, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		out = append(out, dto.ToNotificationDTO(&notifications[i]))
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
		Pagination:    dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		if appErrors.Is(err, repositories.ErrNotificationNotFound) {
			return appErrors.ErrNotificationNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) UnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}
