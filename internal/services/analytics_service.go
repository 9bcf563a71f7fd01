package services

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"
)

// AnalyticsService computes owner-only platform aggregates directly
// from the stores at request time.
type AnalyticsService interface {
	GetDashboard(months int) (*dto.DashboardResponse, error)
	GetUserGrowth(months int) ([]dto.MonthlyDataPoint, error)
	GetRevenue(months int) ([]dto.MonthlyDataPoint, error)
	GetFunnel() (*dto.FunnelMetrics, error)
	GetRetention() (*dto.RetentionResponse, error)
	GetCohorts() (*dto.CohortResponse, error)
}

type AnalyticsServiceImpl struct {
	analyticsRepo repositories.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository) AnalyticsService {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo}
}

func (s *AnalyticsServiceImpl) GetDashboard(months int) (*dto.DashboardResponse, error) {
	if months < 1 || months > 36 {
		months = 12
	}

	totals, err := s.buildTotals()
	if err != nil {
		return nil, err
	}
	growth, err := s.GetUserGrowth(months)
	if err != nil {
		return nil, err
	}
	revenue, err := s.GetRevenue(months)
	if err != nil {
		return nil, err
	}
	funnel, err := s.GetFunnel()
	if err != nil {
		return nil, err
	}

	earned, redeemed, err := s.analyticsRepo.CoinTotals()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	categories, err := s.analyticsRepo.TopCategories(5)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	stats := make([]dto.CategoryStat, 0, len(categories))
	for _, c := range categories {
		stats = append(stats, dto.CategoryStat{Category: c.Category, Count: c.Count})
	}

	return &dto.DashboardResponse{
		Totals:     *totals,
		UserGrowth: growth,
		Revenue:    revenue,
		Funnel:     *funnel,
		Coins: dto.CoinMetrics{
			TotalEarned:   earned,
			TotalRedeemed: redeemed,
			Circulating:   earned - redeemed,
		},
		Categories: stats,
	}, nil
}

func (s *AnalyticsServiceImpl) buildTotals() (*dto.PlatformTotals, error) {
	users, err := s.analyticsRepo.CountUsers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	verified, err := s.analyticsRepo.CountVerifiedUsers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	active, err := s.analyticsRepo.CountActiveUsersSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	items, err := s.analyticsRepo.CountItemsByStatus()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	transactions, err := s.analyticsRepo.CountTransactionsByStatus()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	revenue, err := s.analyticsRepo.TotalRevenue()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.PlatformTotals{
		Users:                users,
		VerifiedUsers:        verified,
		ActiveUsersWeek:      active,
		ItemsByStatus:        items,
		TransactionsByStatus: transactions,
		TotalRevenue:         revenue,
	}, nil
}

func (s *AnalyticsServiceImpl) GetUserGrowth(months int) ([]dto.MonthlyDataPoint, error) {
	if months < 1 || months > 36 {
		months = 12
	}
	series, err := s.analyticsRepo.RegistrationSeries(months)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := make([]dto.MonthlyDataPoint, 0, len(series))
	for _, p := range series {
		out = append(out, dto.MonthlyDataPoint{Month: p.Month, Value: p.Count})
	}
	return out, nil
}

func (s *AnalyticsServiceImpl) GetRevenue(months int) ([]dto.MonthlyDataPoint, error) {
	if months < 1 || months > 36 {
		months = 12
	}
	series, err := s.analyticsRepo.RevenueSeries(months)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := make([]dto.MonthlyDataPoint, 0, len(series))
	for _, p := range series {
		out = append(out, dto.MonthlyDataPoint{Month: p.Month, Value: p.Amount})
	}
	return out, nil
}

// GetRetention reports daily active users over a trailing 10-day
// window, with the share of the whole user base active in it.
func (s *AnalyticsServiceImpl) GetRetention() (*dto.RetentionResponse, error) {
	const window = 10

	series, err := s.analyticsRepo.DailyActiveSeries(window)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	total, err := s.analyticsRepo.CountUsers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	active, err := s.analyticsRepo.CountActiveUsersSince(time.Now().AddDate(0, 0, -window))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.DailyDataPoint, 0, len(series))
	for _, p := range series {
		out = append(out, dto.DailyDataPoint{Day: p.Day, Value: p.Count})
	}

	var rate float64
	if total > 0 {
		rate = float64(active) / float64(total)
	}
	return &dto.RetentionResponse{
		WindowDays:    window,
		DailyActive:   out,
		ActiveUsers:   active,
		TotalUsers:    total,
		RetentionRate: rate,
	}, nil
}

// GetCohorts reports, for each signup day in the last 30 days, how many
// of that day's signups came back after their first day.
func (s *AnalyticsServiceImpl) GetCohorts() (*dto.CohortResponse, error) {
	const window = 30

	rows, err := s.analyticsRepo.SignupCohorts(window)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.CohortDataPoint, 0, len(rows))
	for _, r := range rows {
		point := dto.CohortDataPoint{
			Day:      r.Day,
			SignedUp: r.SignedUp,
			Returned: r.Returned,
		}
		if r.SignedUp > 0 {
			point.ReturnRate = float64(r.Returned) / float64(r.SignedUp)
		}
		out = append(out, point)
	}
	return &dto.CohortResponse{
		WindowDays: window,
		Cohorts:    out,
	}, nil
}

// GetFunnel counts users at each step from signup to first purchase.
func (s *AnalyticsServiceImpl) GetFunnel() (*dto.FunnelMetrics, error) {
	signedUp, err := s.analyticsRepo.CountUsers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	verified, err := s.analyticsRepo.CountVerifiedUsers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	listers, err := s.analyticsRepo.CountDistinctListers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	buyers, err := s.analyticsRepo.CountDistinctBuyers()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.FunnelMetrics{
		SignedUp: signedUp,
		Verified: verified,
		Listers:  listers,
		Buyers:   buyers,
	}, nil
}
