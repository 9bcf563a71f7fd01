package services

import (
	"testing"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

// fakeItemStore backs the workflow tests with an in-memory item table.
// Unused repository methods are left to the embedded nil interface.
type fakeItemStore struct {
	repositories.ItemRepository
	items map[string]*models.Item
}

func (r *fakeItemStore) FindByID(id string) (*models.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemStore) UpdateStatusIf(itemID string, expected, next models.ItemStatus) error {
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	if item.Status != expected {
		return repositories.ErrItemStateConflict
	}
	item.Status = next
	return nil
}

type fakeTransactionStore struct {
	repositories.TransactionRepository
	transactions map[string]*models.Transaction
	orders       map[string]string
	activeSale   bool
}

func (r *fakeTransactionStore) FindByID(id string) (*models.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTransactionStore) SetPaymentOrder(id, orderID string) error {
	tx, ok := r.transactions[id]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	if tx.Status != models.TransactionStatusAccepted {
		return repositories.ErrTransactionStateConflict
	}
	r.orders[id] = orderID
	return nil
}

func (r *fakeTransactionStore) HasActiveSaleForItem(itemID string) (bool, error) {
	return r.activeSale, nil
}

func newWorkflowFixture() (TransactionService, *fakeItemStore, *fakeTransactionStore) {
	items := &fakeItemStore{items: map[string]*models.Item{}}
	transactions := &fakeTransactionStore{
		transactions: map[string]*models.Transaction{},
		orders:       map[string]string{},
	}
	svc := NewTransactionService(nil, transactions, items, nil, nil, nil)
	return svc, items, transactions
}

func listedItem(items *fakeItemStore, id, owner string, status models.ItemStatus) {
	items.items[id] = &models.Item{
		BaseModel: models.BaseModel{ID: id},
		Title:     "Denim jacket",
		Price:     1000,
		Status:    status,
		OwnerID:   owner,
	}
}

func pendingDeal(transactions *fakeTransactionStore, id, buyer, seller string, status models.TransactionStatus) {
	transactions.transactions[id] = &models.Transaction{
		BaseModel:   models.BaseModel{ID: id},
		ItemID:      "item-1",
		BuyerID:     buyer,
		SellerID:    seller,
		OfferAmount: 1000,
		CoinReward:  50,
		Status:      status,
		Type:        models.TransactionTypeBuy,
	}
}

func TestBuy_OwnItemForbidden(t *testing.T) {
	t.Parallel()

	svc, items, _ := newWorkflowFixture()
	// Self-dealing is rejected before availability is even considered.
	listedItem(items, "item-1", "alice", models.ItemStatusPending)

	_, err := svc.Buy("alice", "item-1", &dto.BuyRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrSelfTransaction))
}

func TestBuy_RequiresApprovedItem(t *testing.T) {
	t.Parallel()

	svc, items, _ := newWorkflowFixture()

	_, err := svc.Buy("bob", "missing", &dto.BuyRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrItemNotFound))

	listedItem(items, "item-1", "alice", models.ItemStatusPending)
	_, err = svc.Buy("bob", "item-1", &dto.BuyRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrItemUnavailable))

	items.items["item-1"].Status = models.ItemStatusSold
	_, err = svc.Buy("bob", "item-1", &dto.BuyRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrItemUnavailable))
}

func TestMakeOffer_SharesBuyPreconditions(t *testing.T) {
	t.Parallel()

	svc, items, _ := newWorkflowFixture()
	listedItem(items, "item-1", "alice", models.ItemStatusApproved)

	_, err := svc.MakeOffer("alice", "item-1", &dto.OfferRequest{OfferAmount: 800})
	assert.True(t, appErrors.Is(err, appErrors.ErrSelfTransaction))
}

func TestRespond_SellerOnly(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	// Neither the buyer nor a stranger may answer the offer.
	_, err := svc.Respond("bob", "tx-1", &dto.RespondRequest{Action: string(models.ActionDeal)})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Respond("mallory", "tx-1", &dto.RespondRequest{Action: string(models.ActionDeal)})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestRespond_ForwardOnlyTransitions(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()

	settled := []models.TransactionStatus{
		models.TransactionStatusAccepted,
		models.TransactionStatusRejected,
		models.TransactionStatusSuperseded,
		models.TransactionStatusCompleted,
	}
	for _, status := range settled {
		pendingDeal(transactions, "tx-1", "bob", "alice", status)
		_, err := svc.Respond("alice", "tx-1", &dto.RespondRequest{Action: string(models.ActionDeal)})
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransactionState), "status %s", status)
	}
}

func TestRespond_RejectsUnknownAction(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	_, err := svc.Respond("alice", "tx-1", &dto.RespondRequest{Action: "maybe"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidationFailed))
}

func TestRespond_CounterNeedsPositiveAmount(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	_, err := svc.Respond("alice", "tx-1", &dto.RespondRequest{Action: string(models.ActionMakeOffer)})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidationFailed))
}

func TestStartPayment_BuyerOnlyFromAccepted(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	_, err := svc.StartPayment("alice", "tx-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.StartPayment("bob", "tx-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransactionState))

	transactions.transactions["tx-1"].Status = models.TransactionStatusAccepted
	order, err := svc.StartPayment("bob", "tx-1")
	assert.NoError(t, err)
	assert.Equal(t, "tx-1", order.TransactionID)
	assert.Equal(t, int64(1000), order.Amount)
	assert.Contains(t, order.OrderID, "order_")
	assert.Equal(t, order.OrderID, transactions.orders["tx-1"])
}

func TestCompletePayment_BuyerOnlyFromAccepted(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	_, err := svc.CompletePayment("alice", "tx-1", "pay-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.CompletePayment("bob", "tx-1", "pay-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransactionState))
}

func TestGet_PartiesOnly(t *testing.T) {
	t.Parallel()

	svc, _, transactions := newWorkflowFixture()
	pendingDeal(transactions, "tx-1", "bob", "alice", models.TransactionStatusPending)

	_, err := svc.Get("mallory", "tx-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	for _, party := range []string{"bob", "alice"} {
		got, err := svc.Get(party, "tx-1")
		assert.NoError(t, err)
		assert.Equal(t, "tx-1", got.ID)
	}
}

func TestCounterOffer_ReversesRoles(t *testing.T) {
	t.Parallel()

	original := &models.Transaction{
		BaseModel:   models.BaseModel{ID: "tx-1"},
		ItemID:      "item-1",
		BuyerID:     "bob",
		SellerID:    "alice",
		OfferAmount: 1000,
		Status:      models.TransactionStatusPending,
		Type:        models.TransactionTypeBuy,
	}

	successor := newCounterOffer(original, 1200, "how about this")
	assert.Equal(t, "alice", successor.BuyerID)
	assert.Equal(t, "bob", successor.SellerID)
	assert.Equal(t, "item-1", successor.ItemID)
	assert.Equal(t, int64(1200), successor.OfferAmount)
	assert.Equal(t, int64(60), successor.CoinReward)
	assert.Equal(t, models.TransactionStatusPending, successor.Status)
	assert.Equal(t, models.TransactionTypeOffer, successor.Type)
	assert.Equal(t, "how about this", successor.Message)
}

func TestReleaseItemIfUnsold(t *testing.T) {
	t.Parallel()

	items := &fakeItemStore{items: map[string]*models.Item{}}
	transactions := &fakeTransactionStore{}
	listedItem(items, "item-1", "alice", models.ItemStatusSold)

	// Another accepted transaction still claims the item: stays sold.
	transactions.activeSale = true
	assert.NoError(t, releaseItemIfUnsold(transactions, items, "item-1"))
	assert.Equal(t, models.ItemStatusSold, items.items["item-1"].Status)

	// No live claim: the rejection puts it back on the marketplace.
	transactions.activeSale = false
	assert.NoError(t, releaseItemIfUnsold(transactions, items, "item-1"))
	assert.Equal(t, models.ItemStatusApproved, items.items["item-1"].Status)

	// Already back on the marketplace: nothing to revert, no error.
	assert.NoError(t, releaseItemIfUnsold(transactions, items, "item-1"))
	assert.Equal(t, models.ItemStatusApproved, items.items["item-1"].Status)
}
