package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"required"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition" validate:"required,is-item-condition"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Images      []string `json:"images" validate:"max=8,dive,url"`
}

type UpdateItemRequest struct {
	Title       string   `json:"title" validate:"omitempty,min=3,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition" validate:"omitempty,is-item-condition"`
	Price       int64    `json:"price" validate:"omitempty,gt=0"`
	Images      []string `json:"images" validate:"max=8,dive,url"`
}

type ItemFilterRequest struct {
	Category  string `form:"category"`
	Condition string `form:"condition" validate:"omitempty,is-item-condition"`
	Search    string `form:"search"`
	MinPrice  int64  `form:"min_price"`
	MaxPrice  int64  `form:"max_price"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

type ReviewItemRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" validate:"max=500"`
}

type ItemDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Size        string            `json:"size,omitempty"`
	Condition   string            `json:"condition"`
	Price       int64             `json:"price"`
	CoinReward  int64             `json:"coin_reward"`
	Status      models.ItemStatus `json:"status"`
	IsFlagged   bool              `json:"is_flagged,omitempty"`
	OwnerID     string            `json:"owner_id"`
	OwnerName   string            `json:"owner_name,omitempty"`
	Views       int64             `json:"views"`
	Images      []string          `json:"images"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ItemListResponse struct {
	Items      []ItemDTO  `json:"items"`
	Pagination Pagination `json:"pagination"`
}
