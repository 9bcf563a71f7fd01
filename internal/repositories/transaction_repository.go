package repositories

import (
	"errors"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionStateConflict = errors.New("transaction is not in the expected state")
)

type TransactionRepository interface {
	Create(transaction *models.Transaction) error
	FindByID(id string) (*models.Transaction, error)
	FindByUser(userID string, criteria TransactionFilter) ([]models.Transaction, int64, error)
	// HasActiveSaleForItem reports whether an accepted or completed
	// transaction still claims the item.
	HasActiveSaleForItem(itemID string) (bool, error)

	// UpdateStatusIf moves the transaction from one status to another
	// only when it is still in the expected status. Loser of a race
	// gets ErrTransactionStateConflict; statuses never move backwards.
	UpdateStatusIf(id string, expected, next models.TransactionStatus) error
	MarkSuperseded(id, successorID string) error
	SetPaymentOrder(id, orderID string) error
	CompleteWithPayment(id, paymentID string) error
}

type TransactionRepositoryImpl struct {
	db *gorm.DB
}

type TransactionFilter struct {
	Role     string // "buyer", "seller" or empty for both
	Status   models.TransactionStatus
	Page     int
	PageSize int
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

func (r *TransactionRepositoryImpl) Create(transaction *models.Transaction) error {
	return r.db.Create(transaction).Error
}

func (r *TransactionRepositoryImpl) FindByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.Preload("Item").Preload("Buyer").Preload("Seller").
		First(&tx, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepositoryImpl) FindByUser(userID string, criteria TransactionFilter) ([]models.Transaction, int64, error) {
	query := r.db.Model(&models.Transaction{})

	switch criteria.Role {
	case "buyer":
		query = query.Where("buyer_id = ?", userID)
	case "seller":
		query = query.Where("seller_id = ?", userID)
	default:
		query = query.Where("buyer_id = ? OR seller_id = ?", userID, userID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var transactions []models.Transaction
	err := query.Preload("Item").Preload("Buyer").Preload("Seller").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *TransactionRepositoryImpl) HasActiveSaleForItem(itemID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("item_id = ? AND status IN ?", itemID, []models.TransactionStatus{
			models.TransactionStatusAccepted,
			models.TransactionStatusCompleted,
		}).
		Count(&count).Error
	return count > 0, err
}

func (r *TransactionRepositoryImpl) UpdateStatusIf(id string, expected, next models.TransactionStatus) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	return r.checkTransition(result, id)
}

func (r *TransactionRepositoryImpl) MarkSuperseded(id, successorID string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":           models.TransactionStatusSuperseded,
			"superseded_by_id": successorID,
		})
	return r.checkTransition(result, id)
}

func (r *TransactionRepositoryImpl) SetPaymentOrder(id, orderID string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusAccepted).
		Update("payment_order_id", orderID)
	return r.checkTransition(result, id)
}

func (r *TransactionRepositoryImpl) CompleteWithPayment(id, paymentID string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusAccepted).
		Updates(map[string]interface{}{
			"status":     models.TransactionStatusCompleted,
			"payment_id": paymentID,
		})
	return r.checkTransition(result, id)
}

func (r *TransactionRepositoryImpl) checkTransition(result *gorm.DB, id string) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTransactionNotFound
		}
		return ErrTransactionStateConflict
	}
	return nil
}
