package models

type UserRole string
type ItemStatus string
type TransactionStatus string
type TransactionType string
type TransactionAction string
type CoinTransactionType string
type NotificationAction string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
	UserRoleOwner UserRole = "owner"

	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
	ItemStatusSwapped  ItemStatus = "swapped"
	ItemStatusSold     ItemStatus = "sold"

	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusAccepted   TransactionStatus = "accepted"
	TransactionStatusRejected   TransactionStatus = "rejected"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusSuperseded TransactionStatus = "superseded"

	TransactionTypeBuy   TransactionType = "buy"
	TransactionTypeOffer TransactionType = "offer"

	// Seller responses to a pending transaction
	ActionDeal      TransactionAction = "deal"
	ActionMakeOffer TransactionAction = "make_offer"
	ActionNoDeal    TransactionAction = "no_deal"

	CoinEarned   CoinTransactionType = "earned"
	CoinRedeemed CoinTransactionType = "redeemed"

	// What the recipient is expected to do about a notification
	NotificationActionNone         NotificationAction = "none"
	NotificationActionDeal         NotificationAction = "deal"
	NotificationActionPay          NotificationAction = "pay"
	NotificationActionRespondOffer NotificationAction = "respond_to_offer"
)
