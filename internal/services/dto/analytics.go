package dto

// DashboardResponse is the owner's platform overview.
type DashboardResponse struct {
	Totals     PlatformTotals     `json:"totals"`
	UserGrowth []MonthlyDataPoint `json:"user_growth"`
	Revenue    []MonthlyDataPoint `json:"revenue"`
	Funnel     FunnelMetrics      `json:"funnel"`
	Coins      CoinMetrics        `json:"coins"`
	Categories []CategoryStat     `json:"top_categories"`
}

type PlatformTotals struct {
	Users                int64            `json:"users"`
	VerifiedUsers        int64            `json:"verified_users"`
	ActiveUsersWeek      int64            `json:"active_users_week"`
	ItemsByStatus        map[string]int64 `json:"items_by_status"`
	TransactionsByStatus map[string]int64 `json:"transactions_by_status"`
	TotalRevenue         int64            `json:"total_revenue"`
}

type MonthlyDataPoint struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

// FunnelMetrics counts users through signup, verification, listing and
// buying.
type FunnelMetrics struct {
	SignedUp int64 `json:"signed_up"`
	Verified int64 `json:"verified"`
	Listers  int64 `json:"listers"`
	Buyers   int64 `json:"buyers"`
}

type CoinMetrics struct {
	TotalEarned   int64 `json:"total_earned"`
	TotalRedeemed int64 `json:"total_redeemed"`
	Circulating   int64 `json:"circulating"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type DailyDataPoint struct {
	Day   string `json:"day"`
	Value int64  `json:"value"`
}

// RetentionResponse covers a trailing activity window.
type RetentionResponse struct {
	WindowDays    int              `json:"window_days"`
	DailyActive   []DailyDataPoint `json:"daily_active"`
	ActiveUsers   int64            `json:"active_users"`
	TotalUsers    int64            `json:"total_users"`
	RetentionRate float64          `json:"retention_rate"`
}

type CohortDataPoint struct {
	Day        string  `json:"day"`
	SignedUp   int64   `json:"signed_up"`
	Returned   int64   `json:"returned"`
	ReturnRate float64 `json:"return_rate"`
}

type CohortResponse struct {
	WindowDays int               `json:"window_days"`
	Cohorts    []CohortDataPoint `json:"cohorts"`
}
