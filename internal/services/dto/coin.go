package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type LedgerEntryDTO struct {
	ID            string                     `json:"id"`
	Amount        int64                      `json:"amount"`
	Type          models.CoinTransactionType `json:"type"`
	Description   string                     `json:"description,omitempty"`
	TransactionID *string                    `json:"transaction_id,omitempty"`
	ItemID        *string                    `json:"item_id,omitempty"`
	BalanceAfter  int64                      `json:"balance_after"`
	CreatedAt     time.Time                  `json:"created_at"`
}

type LedgerResponse struct {
	Entries    []LedgerEntryDTO `json:"entries"`
	Balance    int64            `json:"balance"`
	Pagination Pagination       `json:"pagination"`
}

func ToLedgerEntryDTO(entry *models.CoinTransaction) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:            entry.ID,
		Amount:        entry.Amount,
		Type:          entry.Type,
		Description:   entry.Description,
		TransactionID: entry.TransactionID,
		ItemID:        entry.ItemID,
		BalanceAfter:  entry.BalanceAfter,
		CreatedAt:     entry.CreatedAt,
	}
}
