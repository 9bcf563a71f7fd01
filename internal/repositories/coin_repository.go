package repositories

import (
	"errors"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient coin balance")
	ErrDuplicateAward      = errors.New("coins already awarded for this transaction")
)

type CoinRepository interface {
	// AdjustBalance applies a signed delta to the user's balance and
	// returns the new value. A negative delta that would take the
	// balance below zero fails with ErrInsufficientBalance. Call this
	// inside a database transaction together with Record.
	AdjustBalance(userID string, delta int64) (int64, error)

	// Record appends a ledger entry. A second award for the same
	// (user, type, transaction) fails with ErrDuplicateAward.
	Record(entry *models.CoinTransaction) error

	FindByUser(userID string, page, pageSize int) ([]models.CoinTransaction, int64, error)
	GetBalance(userID string) (int64, error)
}

type CoinRepositoryImpl struct {
	db *gorm.DB
}

func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &CoinRepositoryImpl{db: db}
}

func (r *CoinRepositoryImpl) AdjustBalance(userID string, delta int64) (int64, error) {
	query := r.db.Model(&models.User{}).Where("id = ?", userID)
	if delta < 0 {
		query = query.Where("coin_balance >= ?", -delta)
	}
	result := query.Update("coin_balance", gorm.Expr("coin_balance + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, ErrUserNotFound
		}
		return 0, ErrInsufficientBalance
	}

	// The update above holds the row lock until the surrounding
	// transaction commits, so this read is stable.
	var balance int64
	err := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("coin_balance", &balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *CoinRepositoryImpl) Record(entry *models.CoinTransaction) error {
	if err := r.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAward
		}
		return err
	}
	return nil
}

func (r *CoinRepositoryImpl) FindByUser(userID string, page, pageSize int) ([]models.CoinTransaction, int64, error) {
	query := r.db.Model(&models.CoinTransaction{}).Where("user_id = ?", userID)

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

	var entries []models.CoinTransaction
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *CoinRepositoryImpl) GetBalance(userID string) (int64, error) {
	var balance int64
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("coin_balance", &balance)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrUserNotFound
	}
	return balance, nil
}
