package handlers

// AppHandlers groups every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ItemHandler         *ItemHandler
	TransactionHandler  *TransactionHandler
	CoinHandler         *CoinHandler
	NotificationHandler *NotificationHandler
	CouponHandler       *CouponHandler
	AnalyticsHandler    *AnalyticsHandler
}
