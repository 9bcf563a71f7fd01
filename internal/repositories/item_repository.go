package repositories

import (
	"errors"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrItemStateConflict    = errors.New("item is not in the expected state")
	ErrRewardAlreadyGranted = errors.New("listing reward already granted for this item")
)

type ItemRepository interface {
	Create(item *models.Item) error
	FindByID(id string) (*models.Item, error)
	Update(item *models.Item) error
	UpdateFields(itemID string, fields map[string]interface{}) error
	Delete(itemID string) error

	FindApproved(criteria ItemFilter) ([]models.Item, int64, error)
	FindByOwner(ownerID string, page, pageSize int) ([]models.Item, int64, error)
	FindPendingReview(page, pageSize int) ([]models.Item, int64, error)

	// UpdateStatusIf moves the item from one status to another only when
	// it is still in the expected status. Loser of a race gets
	// ErrItemStateConflict.
	UpdateStatusIf(itemID string, expected, next models.ItemStatus) error
	// MarkRewardGranted claims the one-time listing reward for the item.
	// A second claim fails with ErrRewardAlreadyGranted.
	MarkRewardGranted(itemID string) error
	SetFlagged(itemID string, flagged bool) error
	IncrementViews(itemID string) error
}

type ItemRepositoryImpl struct {
	db *gorm.DB
}

type ItemFilter struct {
	Category     string
	Condition    string
	Search       string
	MinPrice     int64
	MaxPrice     int64
	ExcludeOwner string
	Page         int
	PageSize     int
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl{db: db}
}

func (r *ItemRepositoryImpl) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

func (r *ItemRepositoryImpl) FindByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Owner").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl) Update(item *models.Item) error {
	result := r.db.Save(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepositoryImpl) UpdateFields(itemID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Item{}).Where("id = ?", itemID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepositoryImpl) Delete(itemID string) error {
	result := r.db.Delete(&models.Item{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepositoryImpl) FindApproved(criteria ItemFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{}).Where("status = ?", models.ItemStatusApproved)

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Condition != "" {
		query = query.Where("condition = ?", criteria.Condition)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if criteria.MinPrice > 0 {
		query = query.Where("price >= ?", criteria.MinPrice)
	}
	if criteria.MaxPrice > 0 {
		query = query.Where("price <= ?", criteria.MaxPrice)
	}
	if criteria.ExcludeOwner != "" {
		query = query.Where("owner_id <> ?", criteria.ExcludeOwner)
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

	var items []models.Item
	err := query.Preload("Owner").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ItemRepositoryImpl) FindByOwner(ownerID string, page, pageSize int) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{}).Where("owner_id = ?", ownerID)

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

	var items []models.Item
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ItemRepositoryImpl) FindPendingReview(page, pageSize int) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{}).Where("status = ?", models.ItemStatusPending)

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

	var items []models.Item
	err := query.Preload("Owner").
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ItemRepositoryImpl) UpdateStatusIf(itemID string, expected, next models.ItemStatus) error {
	result := r.db.Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, expected).
		Update("status", next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Item{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrItemNotFound
		}
		return ErrItemStateConflict
	}
	return nil
}

func (r *ItemRepositoryImpl) MarkRewardGranted(itemID string) error {
	result := r.db.Model(&models.Item{}).
		Where("id = ? AND reward_granted = ?", itemID, false).
		Update("reward_granted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Item{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrItemNotFound
		}
		return ErrRewardAlreadyGranted
	}
	return nil
}

func (r *ItemRepositoryImpl) SetFlagged(itemID string, flagged bool) error {
	return r.UpdateFields(itemID, map[string]interface{}{
		"is_flagged": flagged,
	})
}

func (r *ItemRepositoryImpl) IncrementViews(itemID string) error {
	return r.UpdateFields(itemID, map[string]interface{}{
		"views": gorm.Expr("views + 1"),
	})
}
