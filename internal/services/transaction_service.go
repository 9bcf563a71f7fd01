package services

import (
	"fmt"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/email"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionService drives the buy/offer negotiation state machine:
// pending -> accepted|rejected|superseded, accepted -> completed.
// Every transition is a conditional update, so of two concurrent
// actors exactly one wins and the other sees an InvalidState error.
type TransactionService interface {
	Buy(buyerID, itemID string, req *dto.BuyRequest) (*dto.TransactionDTO, error)
	MakeOffer(buyerID, itemID string, req *dto.OfferRequest) (*dto.TransactionDTO, error)
	Respond(responderID, transactionID string, req *dto.RespondRequest) (*dto.TransactionDTO, error)
	StartPayment(buyerID, transactionID string) (*dto.PaymentOrderResponse, error)
	CompletePayment(buyerID, transactionID, paymentID string) (*dto.TransactionDTO, error)
	Get(userID, transactionID string) (*dto.TransactionDTO, error)
	List(userID string, req *dto.TransactionListRequest) (*dto.TransactionListResponse, error)
}

type TransactionServiceImpl struct {
	db               *gorm.DB
	transactionRepo  repositories.TransactionRepository
	itemRepo         repositories.ItemRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
}

func NewTransactionService(
	db *gorm.DB,
	transactionRepo repositories.TransactionRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) TransactionService {
	return &TransactionServiceImpl{
		db:               db,
		transactionRepo:  transactionRepo,
		itemRepo:         itemRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
	}
}

func (s *TransactionServiceImpl) Buy(buyerID, itemID string, req *dto.BuyRequest) (*dto.TransactionDTO, error) {
	item, err := s.checkInitiate(buyerID, itemID)
	if err != nil {
		return nil, err
	}
	return s.initiate(buyerID, item, models.TransactionTypeBuy, item.Price, req.Message)
}

func (s *TransactionServiceImpl) MakeOffer(buyerID, itemID string, req *dto.OfferRequest) (*dto.TransactionDTO, error) {
	item, err := s.checkInitiate(buyerID, itemID)
	if err != nil {
		return nil, err
	}
	return s.initiate(buyerID, item, models.TransactionTypeOffer, req.OfferAmount, req.Message)
}

// checkInitiate enforces the entry preconditions shared by buy and
// offer: the buyer may not own the item, and it must be approved.
func (s *TransactionServiceImpl) checkInitiate(buyerID, itemID string) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrItemNotFound) {
			return nil, appErrors.ErrItemNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	if item.OwnerID == buyerID {
		return nil, appErrors.ErrSelfTransaction
	}
	if item.Status != models.ItemStatusApproved {
		return nil, appErrors.ErrItemUnavailable
	}
	return item, nil
}

func (s *TransactionServiceImpl) initiate(buyerID string, item *models.Item, txType models.TransactionType, amount int64, message string) (*dto.TransactionDTO, error) {
	transaction := &models.Transaction{
		ItemID:      item.ID,
		BuyerID:     buyerID,
		SellerID:    item.OwnerID,
		OfferAmount: amount,
		CoinReward:  amount * BuyerRewardPercent / 100,
		Status:      models.TransactionStatusPending,
		Type:        txType,
		Message:     message,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewTransactionRepository(tx).Create(transaction); err != nil {
			return err
		}
		notifType := repositories.NotificationTypeBuyRequest
		title := "New buy request"
		if txType == models.TransactionTypeOffer {
			notifType = repositories.NotificationTypeOfferReceived
			title = "New offer on your item"
		}
		return repositories.NewNotificationRepository(tx).Create(&models.Notification{
			UserID:         item.OwnerID,
			SenderID:       buyerID,
			Type:           notifType,
			Title:          title,
			Message:        message,
			ItemID:         &item.ID,
			TransactionID:  &transaction.ID,
			ActionRequired: models.NotificationActionDeal,
			ExpiresAt:      time.Now().Add(models.NotificationTTL),
		})
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := dto.ToTransactionDTO(transaction)
	return &out, nil
}

func (s *TransactionServiceImpl) Respond(responderID, transactionID string, req *dto.RespondRequest) (*dto.TransactionDTO, error) {
	transaction, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.SellerID != responderID {
		return nil, appErrors.ErrForbidden
	}
	if transaction.Status != models.TransactionStatusPending {
		return nil, appErrors.ErrInvalidTransactionState
	}

	switch models.TransactionAction(req.Action) {
	case models.ActionDeal:
		return s.accept(transaction)
	case models.ActionNoDeal:
		return s.reject(transaction)
	case models.ActionMakeOffer:
		if req.CounterAmount <= 0 {
			return nil, appErrors.ValidationError(map[string]string{
				"counter_amount": "must be a positive amount",
			})
		}
		return s.counter(transaction, req.CounterAmount, req.Message)
	default:
		return nil, appErrors.ValidationError(map[string]string{
			"action": "must be one of deal, make_offer, no_deal",
		})
	}
}

// accept moves the transaction to accepted and the item to sold, then
// asks the buyer to pay. Coins are not touched here; the single award
// point is payment completion.
func (s *TransactionServiceImpl) accept(transaction *models.Transaction) (*dto.TransactionDTO, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewTransactionRepository(tx).UpdateStatusIf(
			transaction.ID, models.TransactionStatusPending, models.TransactionStatusAccepted,
		); err != nil {
			return err
		}
		if err := repositories.NewItemRepository(tx).UpdateStatusIf(
			transaction.ItemID, models.ItemStatusApproved, models.ItemStatusSold,
		); err != nil {
			return err
		}
		return repositories.NewNotificationRepository(tx).Create(&models.Notification{
			UserID:         transaction.BuyerID,
			SenderID:       transaction.SellerID,
			Type:           repositories.NotificationTypeOfferAccepted,
			Title:          "Offer accepted, complete your payment",
			ItemID:         &transaction.ItemID,
			TransactionID:  &transaction.ID,
			ActionRequired: models.NotificationActionPay,
			ExpiresAt:      time.Now().Add(models.NotificationTTL),
		})
	})
	if err != nil {
		return nil, translateTransactionStateErr(err)
	}
	return s.Get(transaction.SellerID, transaction.ID)
}

func (s *TransactionServiceImpl) reject(transaction *models.Transaction) (*dto.TransactionDTO, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewTransactionRepository(tx)
		if err := txRepo.UpdateStatusIf(
			transaction.ID, models.TransactionStatusPending, models.TransactionStatusRejected,
		); err != nil {
			return err
		}
		if err := releaseItemIfUnsold(txRepo, repositories.NewItemRepository(tx), transaction.ItemID); err != nil {
			return err
		}
		return repositories.NewNotificationRepository(tx).Create(&models.Notification{
			UserID:        transaction.BuyerID,
			SenderID:      transaction.SellerID,
			Type:          repositories.NotificationTypeOfferRejected,
			Title:         "Your offer was declined",
			ItemID:        &transaction.ItemID,
			TransactionID: &transaction.ID,
			ExpiresAt:     time.Now().Add(models.NotificationTTL),
		})
	})
	if err != nil {
		return nil, translateTransactionStateErr(err)
	}
	return s.Get(transaction.SellerID, transaction.ID)
}

// releaseItemIfUnsold puts a sold item back on the marketplace after a
// rejection, unless an accepted or completed transaction still claims
// it (its buyer may be mid-payment).
func releaseItemIfUnsold(txRepo repositories.TransactionRepository, itemRepo repositories.ItemRepository, itemID string) error {
	claimed, err := txRepo.HasActiveSaleForItem(itemID)
	if err != nil {
		return err
	}
	if claimed {
		return nil
	}
	err = itemRepo.UpdateStatusIf(itemID, models.ItemStatusSold, models.ItemStatusApproved)
	if err != nil && !appErrors.Is(err, repositories.ErrItemStateConflict) {
		return err
	}
	return nil
}

// newCounterOffer builds the role-reversed successor of a countered
// transaction: the countering seller takes the buyer seat of the new
// record and the original buyer decides its fate.
func newCounterOffer(original *models.Transaction, counterAmount int64, message string) *models.Transaction {
	return &models.Transaction{
		ItemID:      original.ItemID,
		BuyerID:     original.SellerID,
		SellerID:    original.BuyerID,
		OfferAmount: counterAmount,
		CoinReward:  counterAmount * BuyerRewardPercent / 100,
		Status:      models.TransactionStatusPending,
		Type:        models.TransactionTypeOffer,
		Message:     message,
	}
}

// counter replaces the pending transaction with a role-reversed one.
// The old transaction is marked superseded and points at its successor,
// so exactly one live transaction exists per negotiation thread.
func (s *TransactionServiceImpl) counter(transaction *models.Transaction, counterAmount int64, message string) (*dto.TransactionDTO, error) {
	successor := newCounterOffer(transaction, counterAmount, message)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewTransactionRepository(tx)
		if err := txRepo.Create(successor); err != nil {
			return err
		}
		if err := txRepo.MarkSuperseded(transaction.ID, successor.ID); err != nil {
			return err
		}
		return repositories.NewNotificationRepository(tx).Create(&models.Notification{
			UserID:         transaction.BuyerID,
			SenderID:       transaction.SellerID,
			Type:           repositories.NotificationTypeCounterOffer,
			Title:          "Counter-offer received",
			Message:        message,
			ItemID:         &transaction.ItemID,
			TransactionID:  &successor.ID,
			ActionRequired: models.NotificationActionRespondOffer,
			ExpiresAt:      time.Now().Add(models.NotificationTTL),
		})
	})
	if err != nil {
		return nil, translateTransactionStateErr(err)
	}

	out := dto.ToTransactionDTO(successor)
	return &out, nil
}

// StartPayment issues an opaque payment order for an accepted
// transaction. The order id correlates the external payment flow.
func (s *TransactionServiceImpl) StartPayment(buyerID, transactionID string) (*dto.PaymentOrderResponse, error) {
	transaction, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.BuyerID != buyerID {
		return nil, appErrors.ErrForbidden
	}
	if transaction.Status != models.TransactionStatusAccepted {
		return nil, appErrors.ErrInvalidTransactionState
	}

	orderID := "order_" + uuid.NewString()
	if err := s.transactionRepo.SetPaymentOrder(transactionID, orderID); err != nil {
		return nil, translateTransactionStateErr(err)
	}

	return &dto.PaymentOrderResponse{
		TransactionID: transactionID,
		OrderID:       orderID,
		Amount:        transaction.OfferAmount,
		Currency:      "INR",
	}, nil
}

// CompletePayment finishes the sale: accepted -> completed, then both
// parties are credited in the same database transaction. The ledger's
// unique award index makes a replay of this call a no-op failure, so
// coins for one sale can never be granted twice.
func (s *TransactionServiceImpl) CompletePayment(buyerID, transactionID, paymentID string) (*dto.TransactionDTO, error) {
	transaction, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.BuyerID != buyerID {
		return nil, appErrors.ErrForbidden
	}
	if transaction.Status != models.TransactionStatusAccepted {
		return nil, appErrors.ErrInvalidTransactionState
	}

	buyerReward := transaction.CoinReward
	sellerReward := transaction.OfferAmount * SellerRewardPercent / 100

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewTransactionRepository(tx).CompleteWithPayment(transactionID, paymentID); err != nil {
			return err
		}

		coinRepo := repositories.NewCoinRepository(tx)
		if err := s.award(coinRepo, transaction.BuyerID, buyerReward, "Purchase reward", transaction); err != nil {
			return err
		}
		if err := s.award(coinRepo, transaction.SellerID, sellerReward, "Sale reward", transaction); err != nil {
			return err
		}

		notificationRepo := repositories.NewNotificationRepository(tx)
		if err := notificationRepo.Create(&models.Notification{
			UserID:        transaction.SellerID,
			SenderID:      transaction.BuyerID,
			Type:          repositories.NotificationTypePaymentDone,
			Title:         "Payment received, sale complete",
			ItemID:        &transaction.ItemID,
			TransactionID: &transaction.ID,
			ExpiresAt:     time.Now().Add(models.NotificationTTL),
		}); err != nil {
			return err
		}
		if buyerReward <= 0 {
			return nil
		}
		return notificationRepo.Create(&models.Notification{
			UserID:        transaction.BuyerID,
			SenderID:      transaction.SellerID,
			Type:          repositories.NotificationTypeCoinsAwarded,
			Title:         fmt.Sprintf("You earned %d coins", buyerReward),
			ItemID:        &transaction.ItemID,
			TransactionID: &transaction.ID,
			ExpiresAt:     time.Now().Add(models.NotificationTTL),
		})
	})
	if err != nil {
		return nil, translateTransactionStateErr(err)
	}

	s.sendSaleEmail(transaction, sellerReward)
	return s.Get(buyerID, transactionID)
}

func (s *TransactionServiceImpl) award(coinRepo repositories.CoinRepository, userID string, amount int64, description string, transaction *models.Transaction) error {
	if amount <= 0 {
		return nil
	}
	balance, err := coinRepo.AdjustBalance(userID, amount)
	if err != nil {
		return err
	}
	return coinRepo.Record(&models.CoinTransaction{
		UserID:        userID,
		Amount:        amount,
		Type:          models.CoinEarned,
		Description:   description,
		TransactionID: &transaction.ID,
		ItemID:        &transaction.ItemID,
		BalanceAfter:  balance,
	})
}

func (s *TransactionServiceImpl) sendSaleEmail(transaction *models.Transaction, sellerReward int64) {
	seller, err := s.userRepo.FindByID(transaction.SellerID)
	if err != nil {
		return
	}
	itemTitle := ""
	if item, err := s.itemRepo.FindByID(transaction.ItemID); err == nil {
		itemTitle = item.Title
	}
	if err := s.emailProvider.SendSaleCompleted(seller.Email, seller.Name, itemTitle, sellerReward); err != nil {
		logger.WithError(err).Warn("failed to send sale email", "transaction_id", transaction.ID)
	}
}

func (s *TransactionServiceImpl) Get(userID, transactionID string) (*dto.TransactionDTO, error) {
	transaction, err := s.findTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.BuyerID != userID && transaction.SellerID != userID {
		return nil, appErrors.ErrForbidden
	}
	out := dto.ToTransactionDTO(transaction)
	return &out, nil
}

func (s *TransactionServiceImpl) List(userID string, req *dto.TransactionListRequest) (*dto.TransactionListResponse, error) {
	transactions, total, err := s.transactionRepo.FindByUser(userID, repositories.TransactionFilter{
		Role:     req.Role,
		Status:   models.TransactionStatus(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.TransactionDTO, 0, len(transactions))
	for i := range transactions {
		out = append(out, dto.ToTransactionDTO(&transactions[i]))
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.TransactionListResponse{
		Transactions: out,
		Pagination:   dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *TransactionServiceImpl) findTransaction(transactionID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(transactionID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return transaction, nil
}

func translateTransactionStateErr(err error) error {
	switch {
	case appErrors.Is(err, repositories.ErrTransactionNotFound):
		return appErrors.ErrTransactionNotFound
	case appErrors.Is(err, repositories.ErrTransactionStateConflict),
		appErrors.Is(err, repositories.ErrItemStateConflict):
		return appErrors.ErrInvalidTransactionState
	case appErrors.Is(err, repositories.ErrDuplicateAward):
		return appErrors.ErrInvalidTransactionState
	default:
		return appErrors.InternalError(err)
	}
}
