package services

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"gorm.io/gorm"
)

// CouponLifetime is how long a redeemed coupon stays usable.
const CouponLifetime = 90 * 24 * time.Hour

// couponTier maps a redemption tier to its cost and discount.
type couponTier struct {
	Coins    int64
	Discount int
	Label    string
}

var couponTiers = map[string]couponTier{
	"small":  {Coins: 50, Discount: 5, Label: "5% off your next purchase"},
	"medium": {Coins: 120, Discount: 10, Label: "10% off your next purchase"},
	"large":  {Coins: 250, Discount: 20, Label: "20% off your next purchase"},
}

type CouponService interface {
	Redeem(userID string, req *dto.RedeemCoinsRequest) (*dto.CouponDTO, error)
	Use(userID string, code string) (*dto.CouponDTO, error)
	List(userID string, page, pageSize int) (*dto.CouponListResponse, error)
}

type CouponServiceImpl struct {
	db         *gorm.DB
	couponRepo repositories.CouponRepository
}

func NewCouponService(db *gorm.DB, couponRepo repositories.CouponRepository) CouponService {
	return &CouponServiceImpl{db: db, couponRepo: couponRepo}
}

// Redeem spends coins on a coupon. The debit, the ledger entry and the
// coupon row are written in one database transaction, so a failed step
// never leaves coins missing.
func (s *CouponServiceImpl) Redeem(userID string, req *dto.RedeemCoinsRequest) (*dto.CouponDTO, error) {
	tier, ok := couponTiers[req.Tier]
	if !ok {
		return nil, appErrors.ValidationError(map[string]string{
			"tier": "must be one of small, medium, large",
		})
	}

	code, err := generateCouponCode()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	coupon := &models.RedemptionCoupon{
		UserID:          userID,
		Code:            code,
		Description:     tier.Label,
		DiscountPercent: tier.Discount,
		CoinsRequired:   tier.Coins,
		IsActive:        true,
		ExpiresAt:       time.Now().Add(CouponLifetime),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		coinRepo := repositories.NewCoinRepository(tx)
		balance, err := coinRepo.AdjustBalance(userID, -tier.Coins)
		if err != nil {
			return err
		}
		if err := repositories.NewCouponRepository(tx).Create(coupon); err != nil {
			return err
		}
		return coinRepo.Record(&models.CoinTransaction{
			UserID:       userID,
			Amount:       -tier.Coins,
			Type:         models.CoinRedeemed,
			Description:  "Redeemed: " + tier.Label,
			BalanceAfter: balance,
		})
	})
	if err != nil {
		if appErrors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, appErrors.ErrInsufficientCoins
		}
		return nil, appErrors.InternalError(err)
	}

	out := dto.ToCouponDTO(coupon)
	return &out, nil
}

// Use marks the coupon consumed. The conditional update in the
// repository guarantees a coupon is spent at most once even under
// concurrent use.
func (s *CouponServiceImpl) Use(userID string, code string) (*dto.CouponDTO, error) {
	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCouponNotFound) {
			return nil, appErrors.ErrCouponNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if coupon.UserID != userID {
		return nil, appErrors.ErrForbidden
	}

	if err := s.couponRepo.MarkUsed(coupon.ID, userID); err != nil {
		switch {
		case appErrors.Is(err, repositories.ErrCouponNotFound):
			return nil, appErrors.ErrCouponNotFound
		case appErrors.Is(err, repositories.ErrCouponConflict):
			if time.Now().After(coupon.ExpiresAt) {
				return nil, appErrors.ErrCouponExpired
			}
			return nil, appErrors.ErrCouponAlreadyUsed
		default:
			return nil, appErrors.InternalError(err)
		}
	}

	coupon, err = s.couponRepo.FindByID(coupon.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := dto.ToCouponDTO(coupon)
	return &out, nil
}

func (s *CouponServiceImpl) List(userID string, page, pageSize int) (*dto.CouponListResponse, error) {
	coupons, total, err := s.couponRepo.FindByUser(userID, page, pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.CouponDTO, 0, len(coupons))
	for i := range coupons {
		out = append(out, dto.ToCouponDTO(&coupons[i]))
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.CouponListResponse{
		Coupons:    out,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

// generateCouponCode returns a THRYFT-XXXX-XXXX code from an unambiguous
// alphabet.
func generateCouponCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("THRYFT-")
	for i, c := range raw {
		if i == 4 {
			b.WriteByte('-')
		}
		b.WriteByte(alphabet[int(c)%len(alphabet)])
	}
	return b.String(), nil
}
