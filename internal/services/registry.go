package services

import (
	"github.com/Yashdhankecha/Thryfto-sub001/internal/email"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ItemService         ItemService
	TransactionService  TransactionService
	CoinService         CoinService
	NotificationService NotificationService
	CouponService       CouponService
	AnalyticsService    AnalyticsService
	EmailProvider       email.Provider
}
