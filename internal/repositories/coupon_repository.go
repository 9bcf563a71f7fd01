package repositories

import (
	"errors"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponConflict = errors.New("coupon is no longer usable")
)

type CouponRepository interface {
	Create(coupon *models.RedemptionCoupon) error
	FindByID(id string) (*models.RedemptionCoupon, error)
	FindByCode(code string) (*models.RedemptionCoupon, error)
	FindByUser(userID string, page, pageSize int) ([]models.RedemptionCoupon, int64, error)

	// MarkUsed flips the coupon to used only while it is still active,
	// unused and unexpired. A concurrent second use gets
	// ErrCouponConflict.
	MarkUsed(couponID, userID string) error
}

type CouponRepositoryImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &CouponRepositoryImpl{db: db}
}

func (r *CouponRepositoryImpl) Create(coupon *models.RedemptionCoupon) error {
	return r.db.Create(coupon).Error
}

func (r *CouponRepositoryImpl) FindByID(id string) (*models.RedemptionCoupon, error) {
	var coupon models.RedemptionCoupon
	if err := r.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepositoryImpl) FindByCode(code string) (*models.RedemptionCoupon, error) {
	var coupon models.RedemptionCoupon
	if err := r.db.First(&coupon, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepositoryImpl) FindByUser(userID string, page, pageSize int) ([]models.RedemptionCoupon, int64, error) {
	query := r.db.Model(&models.RedemptionCoupon{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var coupons []models.RedemptionCoupon
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&coupons).Error
	if err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *CouponRepositoryImpl) MarkUsed(couponID, userID string) error {
	now := time.Now()
	result := r.db.Model(&models.RedemptionCoupon{}).
		Where("id = ? AND user_id = ? AND is_active = ? AND is_used = ? AND expires_at > ?",
			couponID, userID, true, false, now).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		err := r.db.Model(&models.RedemptionCoupon{}).
			Where("id = ? AND user_id = ?", couponID, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrCouponNotFound
		}
		return ErrCouponConflict
	}
	return nil
}
