package repositories

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	RegistrationSeries(months int) ([]MonthlyCount, error)
	RevenueSeries(months int) ([]MonthlyAmount, error)

	CountUsers() (int64, error)
	CountVerifiedUsers() (int64, error)
	CountActiveUsersSince(since time.Time) (int64, error)
	CountItemsByStatus() (map[string]int64, error)
	CountTransactionsByStatus() (map[string]int64, error)

	TotalRevenue() (int64, error)
	CoinTotals() (earned int64, redeemed int64, err error)

	CountDistinctListers() (int64, error)
	CountDistinctBuyers() (int64, error)
	TopCategories(limit int) ([]CategoryCount, error)

	DailyActiveSeries(days int) ([]DailyCount, error)
	SignupCohorts(days int) ([]CohortRow, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type MonthlyAmount struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// CohortRow is one signup day with how many of that day's signups came
// back after their first day.
type CohortRow struct {
	Day      string `json:"day"`
	SignedUp int64  `json:"signed_up"`
	Returned int64  `json:"returned"`
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) RegistrationSeries(months int) ([]MonthlyCount, error) {
	var series []MonthlyCount
	err := r.db.Raw(`
        SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
               COUNT(*) AS count
        FROM users
        WHERE created_at >= date_trunc('month', now()) - make_interval(months => ?)
        GROUP BY 1
        ORDER BY 1
    `, months-1).Scan(&series).Error
	return series, err
}

func (r *analyticsRepository) RevenueSeries(months int) ([]MonthlyAmount, error) {
	var series []MonthlyAmount
	err := r.db.Raw(`
        SELECT to_char(date_trunc('month', updated_at), 'YYYY-MM') AS month,
               COALESCE(SUM(offer_amount), 0) AS amount
        FROM transactions
        WHERE status = 'completed'
          AND updated_at >= date_trunc('month', now()) - make_interval(months => ?)
        GROUP BY 1
        ORDER BY 1
    `, months-1).Scan(&series).Error
	return series, err
}

func (r *analyticsRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountVerifiedUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActiveUsersSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("last_login_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountItemsByStatus() (map[string]int64, error) {
	return r.countByStatus("items")
}

func (r *analyticsRepository) CountTransactionsByStatus() (map[string]int64, error) {
	return r.countByStatus("transactions")
}

func (r *analyticsRepository) countByStatus(table string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Table(table).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepository) TotalRevenue() (int64, error) {
	var total int64
	err := r.db.Raw(`
        SELECT COALESCE(SUM(offer_amount), 0)
        FROM transactions
        WHERE status = 'completed'
    `).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) CoinTotals() (int64, int64, error) {
	var totals struct {
		Earned   int64
		Redeemed int64
	}
	err := r.db.Raw(`
        SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'earned'), 0)    AS earned,
               COALESCE(-SUM(amount) FILTER (WHERE type = 'redeemed'), 0) AS redeemed
        FROM coin_transactions
    `).Scan(&totals).Error
	return totals.Earned, totals.Redeemed, err
}

func (r *analyticsRepository) CountDistinctListers() (int64, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(DISTINCT owner_id) FROM items`).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountDistinctBuyers() (int64, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(DISTINCT buyer_id) FROM transactions WHERE status = 'completed'`).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) DailyActiveSeries(days int) ([]DailyCount, error) {
	var series []DailyCount
	err := r.db.Raw(`
        SELECT to_char(date_trunc('day', last_login_at), 'YYYY-MM-DD') AS day,
               COUNT(*) AS count
        FROM users
        WHERE last_login_at >= date_trunc('day', now()) - make_interval(days => ?)
        GROUP BY 1
        ORDER BY 1
    `, days-1).Scan(&series).Error
	return series, err
}

func (r *analyticsRepository) SignupCohorts(days int) ([]CohortRow, error) {
	var rows []CohortRow
	err := r.db.Raw(`
        SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day,
               COUNT(*) AS signed_up,
               COUNT(*) FILTER (
                   WHERE last_login_at >= created_at + interval '1 day'
               ) AS returned
        FROM users
        WHERE created_at >= date_trunc('day', now()) - make_interval(days => ?)
        GROUP BY 1
        ORDER BY 1
    `, days-1).Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopCategories(limit int) ([]CategoryCount, error) {
	if limit < 1 {
		limit = 5
	}
	var categories []CategoryCount
	err := r.db.Raw(`
        SELECT category, COUNT(*) AS count
        FROM items
        WHERE category <> ''
        GROUP BY category
        ORDER BY count DESC
        LIMIT ?
    `, limit).Scan(&categories).Error
	return categories, err
}
