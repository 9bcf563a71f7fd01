package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

// RedeemCoinsRequest spends coins on a discount coupon tier.
type RedeemCoinsRequest struct {
	Tier string `json:"tier" validate:"required,oneof=small medium large"`
}

type UseCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type CouponDTO struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description,omitempty"`
	DiscountPercent int        `json:"discount_percent"`
	CoinsRequired   int64      `json:"coins_required"`
	IsActive        bool       `json:"is_active"`
	IsUsed          bool       `json:"is_used"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CouponListResponse struct {
	Coupons    []CouponDTO `json:"coupons"`
	Pagination Pagination  `json:"pagination"`
}

func ToCouponDTO(coupon *models.RedemptionCoupon) CouponDTO {
	return CouponDTO{
		ID:              coupon.ID,
		Code:            coupon.Code,
		Description:     coupon.Description,
		DiscountPercent: coupon.DiscountPercent,
		CoinsRequired:   coupon.CoinsRequired,
		IsActive:        coupon.IsActive,
		IsUsed:          coupon.IsUsed,
		UsedAt:          coupon.UsedAt,
		ExpiresAt:       coupon.ExpiresAt,
		CreatedAt:       coupon.CreatedAt,
	}
}
