package services

import (
	"testing"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"

	"github.com/stretchr/testify/assert"
)

// rewardItemRepo tracks the one-time listing reward claim.
type rewardItemRepo struct {
	repositories.ItemRepository
	granted bool
}

func (r *rewardItemRepo) MarkRewardGranted(itemID string) error {
	if r.granted {
		return repositories.ErrRewardAlreadyGranted
	}
	r.granted = true
	return nil
}

type recordingCoinRepo struct {
	repositories.CoinRepository
	balance int64
	entries []models.CoinTransaction
}

func (r *recordingCoinRepo) AdjustBalance(userID string, delta int64) (int64, error) {
	r.balance += delta
	return r.balance, nil
}

func (r *recordingCoinRepo) Record(entry *models.CoinTransaction) error {
	r.entries = append(r.entries, *entry)
	return nil
}

type flaggableItemRepo struct {
	repositories.ItemRepository
	item *models.Item
}

func (r *flaggableItemRepo) FindByID(id string) (*models.Item, error) {
	if r.item == nil || r.item.ID != id {
		return nil, repositories.ErrItemNotFound
	}
	copied := *r.item
	return &copied, nil
}

func (r *flaggableItemRepo) SetFlagged(itemID string, flagged bool) error {
	r.item.IsFlagged = flagged
	return nil
}

type capturingMailbox struct {
	repositories.NotificationRepository
	created []models.Notification
}

func (r *capturingMailbox) Create(notification *models.Notification) error {
	r.created = append(r.created, *notification)
	return nil
}

func TestImageEncoding_RoundTrip(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}

	raw, err := encodeImages(urls)
	assert.NoError(t, err)
	assert.Equal(t, urls, decodeImages(raw))
}

func TestImageEncoding_NilAndEmpty(t *testing.T) {
	t.Parallel()

	raw, err := encodeImages(nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{}, decodeImages(raw))

	assert.Equal(t, []string{}, decodeImages(nil))
	assert.Equal(t, []string{}, decodeImages([]byte("not-json")))
}

func TestListingReward_OnlyFirstApprovalPays(t *testing.T) {
	t.Parallel()

	svc := &ItemServiceImpl{coins: config.CoinsConfig{ListingReward: 10}}
	itemRepo := &rewardItemRepo{}
	coinRepo := &recordingCoinRepo{}
	item := &models.Item{
		BaseModel: models.BaseModel{ID: "item-1"},
		Title:     "Denim jacket",
		OwnerID:   "alice",
	}

	assert.NoError(t, svc.creditListingReward(itemRepo, coinRepo, item))
	assert.Len(t, coinRepo.entries, 1)
	assert.Equal(t, int64(10), coinRepo.entries[0].Amount)
	assert.Equal(t, int64(10), coinRepo.entries[0].BalanceAfter)
	assert.Equal(t, "alice", coinRepo.entries[0].UserID)

	// The item was edited and approved a second time: no new coins.
	assert.NoError(t, svc.creditListingReward(itemRepo, coinRepo, item))
	assert.Len(t, coinRepo.entries, 1)
	assert.Equal(t, int64(10), coinRepo.balance)
}

func TestListingReward_DisabledByConfig(t *testing.T) {
	t.Parallel()

	svc := &ItemServiceImpl{coins: config.CoinsConfig{ListingReward: 0}}
	itemRepo := &rewardItemRepo{}
	coinRepo := &recordingCoinRepo{}

	item := &models.Item{BaseModel: models.BaseModel{ID: "item-1"}, OwnerID: "alice"}
	assert.NoError(t, svc.creditListingReward(itemRepo, coinRepo, item))
	assert.False(t, itemRepo.granted)
	assert.Empty(t, coinRepo.entries)
}

func TestSetFlagged_WarnsOwnerOnFlagOnly(t *testing.T) {
	t.Parallel()

	itemRepo := &flaggableItemRepo{item: &models.Item{
		BaseModel: models.BaseModel{ID: "item-1"},
		Title:     "Denim jacket",
		OwnerID:   "alice",
	}}
	mailbox := &capturingMailbox{}
	svc := &ItemServiceImpl{itemRepo: itemRepo, notificationRepo: mailbox}

	assert.NoError(t, svc.SetFlagged("admin-1", "item-1", true))
	assert.True(t, itemRepo.item.IsFlagged)
	assert.Len(t, mailbox.created, 1)
	assert.Equal(t, repositories.NotificationTypeAccountWarning, mailbox.created[0].Type)
	assert.Equal(t, "alice", mailbox.created[0].UserID)
	assert.Equal(t, "admin-1", mailbox.created[0].SenderID)

	// Clearing the flag does not message anybody.
	assert.NoError(t, svc.SetFlagged("admin-1", "item-1", false))
	assert.False(t, itemRepo.item.IsFlagged)
	assert.Len(t, mailbox.created, 1)

	err := svc.SetFlagged("admin-1", "missing", true)
	assert.True(t, appErrors.Is(err, appErrors.ErrItemNotFound))
}

func TestRewardPercents(t *testing.T) {
	t.Parallel()

	// A 1000-unit sale pays the buyer 50 coins and the seller 30.
	assert.Equal(t, int64(50), int64(1000)*BuyerRewardPercent/100)
	assert.Equal(t, int64(30), int64(1000)*SellerRewardPercent/100)

	// Tiny amounts round down to zero instead of going negative.
	assert.Equal(t, int64(0), int64(19)*BuyerRewardPercent/100)
}
