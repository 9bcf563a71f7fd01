package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/cache"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BuyerRewardPercent and SellerRewardPercent are the fixed coin splits
// applied at payment completion.
const (
	BuyerRewardPercent  = 5
	SellerRewardPercent = 3
)

type ItemService interface {
	Create(ownerID string, req *dto.CreateItemRequest) (*dto.ItemDTO, error)
	Update(ownerID, itemID string, req *dto.UpdateItemRequest) (*dto.ItemDTO, error)
	Delete(ownerID, itemID string) error
	Get(ctx context.Context, itemID, viewerKey string) (*dto.ItemDTO, error)
	ListApproved(req *dto.ItemFilterRequest, excludeOwner string) (*dto.ItemListResponse, error)
	ListMine(ownerID string, page, pageSize int) (*dto.ItemListResponse, error)

	// Admin moderation
	ListPendingReview(page, pageSize int) (*dto.ItemListResponse, error)
	Review(adminID, itemID string, req *dto.ReviewItemRequest) error
	SetFlagged(adminID, itemID string, flagged bool) error
}

type ItemServiceImpl struct {
	db               *gorm.DB
	itemRepo         repositories.ItemRepository
	notificationRepo repositories.NotificationRepository
	views            *cache.ViewTracker
	coins            config.CoinsConfig
}

func NewItemService(
	db *gorm.DB,
	itemRepo repositories.ItemRepository,
	notificationRepo repositories.NotificationRepository,
	views *cache.ViewTracker,
	coins config.CoinsConfig,
) ItemService {
	return &ItemServiceImpl{
		db:               db,
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		views:            views,
		coins:            coins,
	}
}

// Create lists an item for admin review. The coin reward for a future
// buyer is precomputed from the asking price.
func (s *ItemServiceImpl) Create(ownerID string, req *dto.CreateItemRequest) (*dto.ItemDTO, error) {
	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	item := &models.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Size:        req.Size,
		Condition:   req.Condition,
		Price:       req.Price,
		CoinReward:  req.Price * BuyerRewardPercent / 100,
		Status:      models.ItemStatusPending,
		OwnerID:     ownerID,
		Images:      images,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := toItemDTO(item)
	return &out, nil
}

// Update edits a listing. Any edit to an approved item sends it back
// through review.
func (s *ItemServiceImpl) Update(ownerID, itemID string, req *dto.UpdateItemRequest) (*dto.ItemDTO, error) {
	item, err := s.findOwnedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == models.ItemStatusSold || item.Status == models.ItemStatusSwapped {
		return nil, appErrors.ErrInvalidTransactionState
	}

	fields := map[string]interface{}{"status": models.ItemStatusPending}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if req.Size != "" {
		fields["size"] = req.Size
	}
	if req.Condition != "" {
		fields["condition"] = req.Condition
	}
	if req.Price > 0 {
		fields["price"] = req.Price
		fields["coin_reward"] = req.Price * BuyerRewardPercent / 100
	}
	if len(req.Images) > 0 {
		images, err := encodeImages(req.Images)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		fields["images"] = images
	}

	if err := s.itemRepo.UpdateFields(itemID, fields); err != nil {
		return nil, appErrors.InternalError(err)
	}

	item, err = s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := toItemDTO(item)
	return &out, nil
}

func (s *ItemServiceImpl) Delete(ownerID, itemID string) error {
	item, err := s.findOwnedItem(ownerID, itemID)
	if err != nil {
		return err
	}
	if item.Status == models.ItemStatusSold {
		return appErrors.ErrInvalidTransactionState
	}
	if err := s.itemRepo.Delete(itemID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// Get returns the item and counts the view unless this viewer was
// already counted within the dedup window.
func (s *ItemServiceImpl) Get(ctx context.Context, itemID, viewerKey string) (*dto.ItemDTO, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrItemNotFound) {
			return nil, appErrors.ErrItemNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if viewerKey != "" && viewerKey != item.OwnerID && s.views.FirstView(ctx, itemID, viewerKey) {
		if err := s.itemRepo.IncrementViews(itemID); err != nil {
			logger.CtxWithError(ctx, "failed to count item view", err, "item_id", itemID)
		} else {
			item.Views++
		}
	}

	out := toItemDTO(item)
	return &out, nil
}

func (s *ItemServiceImpl) ListApproved(req *dto.ItemFilterRequest, excludeOwner string) (*dto.ItemListResponse, error) {
	items, total, err := s.itemRepo.FindApproved(repositories.ItemFilter{
		Category:     req.Category,
		Condition:    req.Condition,
		Search:       req.Search,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		ExcludeOwner: excludeOwner,
		Page:         req.Page,
		PageSize:     req.PageSize,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return itemListResponse(items, req.Page, req.PageSize, total), nil
}

func (s *ItemServiceImpl) ListMine(ownerID string, page, pageSize int) (*dto.ItemListResponse, error) {
	items, total, err := s.itemRepo.FindByOwner(ownerID, page, pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return itemListResponse(items, page, pageSize, total), nil
}

func (s *ItemServiceImpl) ListPendingReview(page, pageSize int) (*dto.ItemListResponse, error) {
	items, total, err := s.itemRepo.FindPendingReview(page, pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return itemListResponse(items, page, pageSize, total), nil
}

// Review approves or rejects a pending listing. Approval credits the
// flat listing reward; the conditional pending->approved transition
// makes a double review, and so a double credit, impossible.
func (s *ItemServiceImpl) Review(adminID, itemID string, req *dto.ReviewItemRequest) error {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrItemNotFound) {
			return appErrors.ErrItemNotFound
		}
		return appErrors.InternalError(err)
	}

	if !req.Approve {
		if err := s.itemRepo.UpdateStatusIf(itemID, models.ItemStatusPending, models.ItemStatusRejected); err != nil {
			return translateItemStateErr(err)
		}
		return s.notifyReview(item, adminID, false, req.Reason)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		itemRepo := repositories.NewItemRepository(tx)
		if err := itemRepo.UpdateStatusIf(itemID, models.ItemStatusPending, models.ItemStatusApproved); err != nil {
			return err
		}
		return s.creditListingReward(itemRepo, repositories.NewCoinRepository(tx), item)
	})
	if err != nil {
		return translateItemStateErr(err)
	}

	return s.notifyReview(item, adminID, true, req.Reason)
}

// creditListingReward pays the flat approval reward at most once over
// the item's lifetime. An edited item cycles back through review, but
// only its first approval earns coins.
func (s *ItemServiceImpl) creditListingReward(itemRepo repositories.ItemRepository, coinRepo repositories.CoinRepository, item *models.Item) error {
	if s.coins.ListingReward <= 0 {
		return nil
	}

	if err := itemRepo.MarkRewardGranted(item.ID); err != nil {
		if appErrors.Is(err, repositories.ErrRewardAlreadyGranted) {
			return nil
		}
		return err
	}

	balance, err := coinRepo.AdjustBalance(item.OwnerID, s.coins.ListingReward)
	if err != nil {
		return err
	}
	return coinRepo.Record(&models.CoinTransaction{
		UserID:       item.OwnerID,
		Amount:       s.coins.ListingReward,
		Type:         models.CoinEarned,
		Description:  "Listing approved: " + item.Title,
		ItemID:       &item.ID,
		BalanceAfter: balance,
	})
}

func (s *ItemServiceImpl) notifyReview(item *models.Item, adminID string, approved bool, reason string) error {
	notifType := repositories.NotificationTypeItemRejected
	title := "Your listing was rejected"
	message := reason
	if approved {
		notifType = repositories.NotificationTypeItemApproved
		title = "Your listing is live"
		message = item.Title + " is now visible to buyers."
	}

	notification := &models.Notification{
		UserID:    item.OwnerID,
		SenderID:  adminID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		ItemID:    &item.ID,
		ExpiresAt: time.Now().Add(models.NotificationTTL),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.WithError(err).Warn("failed to notify listing owner", "item_id", item.ID)
	}
	return nil
}

// SetFlagged marks a listing as problematic without pulling it down.
// Flagging warns the owner; clearing the flag is silent.
func (s *ItemServiceImpl) SetFlagged(adminID, itemID string, flagged bool) error {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrItemNotFound) {
			return appErrors.ErrItemNotFound
		}
		return appErrors.InternalError(err)
	}

	if err := s.itemRepo.SetFlagged(itemID, flagged); err != nil {
		return appErrors.InternalError(err)
	}

	if flagged {
		notification := &models.Notification{
			UserID:    item.OwnerID,
			SenderID:  adminID,
			Type:      repositories.NotificationTypeAccountWarning,
			Title:     "Your listing was flagged",
			Message:   item.Title + " violates the marketplace guidelines. Repeated flags can suspend your account.",
			ItemID:    &item.ID,
			ExpiresAt: time.Now().Add(models.NotificationTTL),
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			logger.WithError(err).Warn("failed to warn listing owner", "item_id", item.ID)
		}
	}
	return nil
}

func (s *ItemServiceImpl) findOwnedItem(ownerID, itemID string) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrItemNotFound) {
			return nil, appErrors.ErrItemNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if item.OwnerID != ownerID {
		return nil, appErrors.ErrForbidden
	}
	return item, nil
}

func translateItemStateErr(err error) error {
	switch {
	case appErrors.Is(err, repositories.ErrItemNotFound):
		return appErrors.ErrItemNotFound
	case appErrors.Is(err, repositories.ErrItemStateConflict):
		return appErrors.ErrInvalidTransactionState
	default:
		return appErrors.InternalError(err)
	}
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeImages(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return []string{}
	}
	return images
}

func toItemDTO(item *models.Item) dto.ItemDTO {
	out := dto.ItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Size:        item.Size,
		Condition:   item.Condition,
		Price:       item.Price,
		CoinReward:  item.CoinReward,
		Status:      item.Status,
		IsFlagged:   item.IsFlagged,
		OwnerID:     item.OwnerID,
		Views:       item.Views,
		Images:      decodeImages(item.Images),
		CreatedAt:   item.CreatedAt,
	}
	if item.Owner != nil {
		out.OwnerName = item.Owner.Name
	}
	return out
}

func itemListResponse(items []models.Item, page, pageSize int, total int64) *dto.ItemListResponse {
	out := make([]dto.ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.ItemListResponse{
		Items:      out,
		Pagination: dto.NewPagination(page, pageSize, total),
	}
}
