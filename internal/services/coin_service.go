package services

import (
	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"
)

type CoinService interface {
	GetBalance(userID string) (*dto.BalanceResponse, error)
	GetLedger(userID string, page, pageSize int) (*dto.LedgerResponse, error)
}

type CoinServiceImpl struct {
	coinRepo repositories.CoinRepository
}

func NewCoinService(coinRepo repositories.CoinRepository) CoinService {
	return &CoinServiceImpl{coinRepo: coinRepo}
}

func (s *CoinServiceImpl) GetBalance(userID string) (*dto.BalanceResponse, error) {
	balance, err := s.coinRepo.GetBalance(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.BalanceResponse{Balance: balance}, nil
}

func (s *CoinServiceImpl) GetLedger(userID string, page, pageSize int) (*dto.LedgerResponse, error) {
	entries, total, err := s.coinRepo.FindByUser(userID, page, pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	balance, err := s.coinRepo.GetBalance(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, dto.ToLedgerEntryDTO(&entries[i]))
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.LedgerResponse{
		Entries:    out,
		Balance:    balance,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}
