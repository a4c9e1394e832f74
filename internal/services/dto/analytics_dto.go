package dto

// RevenueOverviewResponse carries headline billing figures. Money is in
// minor units; the conversion rate is a percentage.
type RevenueOverviewResponse struct {
	TotalRevenue        int64   `json:"totalRevenue"`
	TotalUsers          int64   `json:"totalUsers"`
	PayingUsers         int64   `json:"payingUsers"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	ARPU                int64   `json:"arpu"`
	ConversionRate      float64 `json:"conversionRate"`
}

type MonthlyRevenuePoint struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Total int64  `json:"total"`
}

type RevenueGrowthResponse struct {
	Points []MonthlyRevenuePoint `json:"points"`
}

type PlanMixEntry struct {
	PlanID   string `json:"planId"`
	PlanName string `json:"planName"`
	Payments int64  `json:"payments"`
	Total    int64  `json:"total"`
}

type PlanMixResponse struct {
	Plans []PlanMixEntry `json:"plans"`
}
