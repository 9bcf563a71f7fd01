package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

// BuyRequest opens a transaction at the item's asking price. The item
// is addressed by the URL.
type BuyRequest struct {
	Message string `json:"message" validate:"max=500"`
}

// OfferRequest opens a transaction at the buyer's own price.
type OfferRequest struct {
	OfferAmount int64  `json:"offer_amount" validate:"required,gt=0"`
	Message     string `json:"message" validate:"max=500"`
}

// RespondRequest is the seller's answer to a pending transaction:
// accept it, reject it, or replace it with a counter-offer.
type RespondRequest struct {
	Action        string `json:"action" validate:"required,is-transaction-action"`
	CounterAmount int64  `json:"counter_amount" validate:"omitempty,gt=0"`
	Message       string `json:"message" validate:"max=500"`
}

type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

type TransactionListRequest struct {
	Role     string `form:"role" validate:"omitempty,oneof=buyer seller"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type TransactionDTO struct {
	ID             string                   `json:"id"`
	ItemID         string                   `json:"item_id"`
	ItemTitle      string                   `json:"item_title,omitempty"`
	BuyerID        string                   `json:"buyer_id"`
	BuyerName      string                   `json:"buyer_name,omitempty"`
	SellerID       string                   `json:"seller_id"`
	SellerName     string                   `json:"seller_name,omitempty"`
	OfferAmount    int64                    `json:"offer_amount"`
	CoinReward     int64                    `json:"coin_reward"`
	Status         models.TransactionStatus `json:"status"`
	Type           models.TransactionType   `json:"type"`
	Message        string                   `json:"message,omitempty"`
	SupersededByID *string                  `json:"superseded_by_id,omitempty"`
	PaymentOrderID string                   `json:"payment_order_id,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Pagination   Pagination       `json:"pagination"`
}

// PaymentOrderResponse is returned when the buyer starts paying for an
// accepted transaction.
type PaymentOrderResponse struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

func ToTransactionDTO(tx *models.Transaction) TransactionDTO {
	out := TransactionDTO{
		ID:             tx.ID,
		ItemID:         tx.ItemID,
		BuyerID:        tx.BuyerID,
		SellerID:       tx.SellerID,
		OfferAmount:    tx.OfferAmount,
		CoinReward:     tx.CoinReward,
		Status:         tx.Status,
		Type:           tx.Type,
		Message:        tx.Message,
		SupersededByID: tx.SupersededByID,
		PaymentOrderID: tx.PaymentOrderID,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
	if tx.Item != nil {
		out.ItemTitle = tx.Item.Title
	}
	if tx.Buyer != nil {
		out.BuyerName = tx.Buyer.Name
	}
	if tx.Seller != nil {
		out.SellerName = tx.Seller.Name
	}
	return out
}
