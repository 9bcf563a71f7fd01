package models

// Transaction is a proposed or completed exchange of one item between a
// buyer and a seller. Status only moves forward:
// pending -> accepted|rejected|superseded, accepted -> completed.
type Transaction struct {
	BaseModel
	ItemID   string `gorm:"type:uuid;not null;index" json:"item_id"`
	Item     *Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	BuyerID  string `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer    *User  `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID string `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User  `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	OfferAmount int64 `gorm:"not null" json:"offer_amount"`
	CoinReward  int64 `gorm:"default:0" json:"coin_reward"`

	Status TransactionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Type   TransactionType   `gorm:"type:varchar(10);not null" json:"type"`

	Message string `json:"message"`

	// Set when a counter-offer replaces this transaction.
	SupersededByID *string `gorm:"type:uuid" json:"superseded_by_id,omitempty"`

	// External payment correlation, opaque to the workflow.
	PaymentOrderID string `json:"payment_order_id,omitempty"`
	PaymentID      string `json:"payment_id,omitempty"`
}
