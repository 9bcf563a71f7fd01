package models

// CoinTransaction is an append-only ledger entry. BalanceAfter snapshots
// the user's balance at write time; for any user, entries ordered by
// creation time carry the running sum of Amount. The unique index stops
// a completed sale from being awarded twice to the same party.
type CoinTransaction struct {
	BaseModel
	UserID string              `gorm:"type:uuid;not null;index;uniqueIndex:idx_coin_award_once" json:"user_id"`
	Amount int64               `gorm:"not null" json:"amount"` // signed
	Type   CoinTransactionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_coin_award_once" json:"type"`

	Description string `json:"description"`

	TransactionID *string `gorm:"type:uuid;uniqueIndex:idx_coin_award_once" json:"transaction_id,omitempty"`
	ItemID        *string `gorm:"type:uuid" json:"item_id,omitempty"`

	BalanceAfter int64 `gorm:"not null" json:"balance_after"`
}
