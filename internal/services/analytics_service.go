package services

import (
	"fmt"
	"time"

	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type AnalyticsService interface {
	RevenueOverview() (*dto.RevenueOverviewResponse, error)
	RevenueGrowth() (*dto.RevenueGrowthResponse, error)
	PlanMix() (*dto.PlanMixResponse, error)
}

type analyticsService struct {
	payments repositories.PaymentRepository
	users    repositories.UserRepository
}

func NewAnalyticsService(payments repositories.PaymentRepository, users repositories.UserRepository) AnalyticsService {
	return &analyticsService{payments: payments, users: users}
}

func (s *analyticsService) RevenueOverview() (*dto.RevenueOverviewResponse, error) {
	total, err := s.payments.TotalRevenue()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	users, err := s.users.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	paying, err := s.payments.PayingUsersCount()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	active, err := s.payments.CountActiveSubscriptions()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := ShapeOverview(total, users, paying)
	resp.ActiveSubscriptions = active
	return resp, nil
}

// ShapeOverview derives the ratio figures. ARPU averages revenue over
// every registered user, conversion is the paying share as a percentage.
// Both divisions are guarded: an empty platform reports zeros instead of
// dividing by zero.
func ShapeOverview(totalRevenue, totalUsers, payingUsers int64) *dto.RevenueOverviewResponse {
	resp := &dto.RevenueOverviewResponse{
		TotalRevenue: totalRevenue,
		TotalUsers:   totalUsers,
		PayingUsers:  payingUsers,
	}
	if totalUsers > 0 {
		resp.ARPU = totalRevenue / totalUsers
		resp.ConversionRate = float64(payingUsers) / float64(totalUsers) * 100
	}
	return resp
}

func (s *analyticsService) RevenueGrowth() (*dto.RevenueGrowthResponse, error) {
	rows, err := s.payments.MonthlyRevenue()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RevenueGrowthResponse{Points: ShapeMonthly(rows)}, nil
}

// ShapeMonthly turns aggregation rows into ordered chart points,
// merging any rows that land in the same year/month bucket.
func ShapeMonthly(rows []repositories.MonthlyRevenueRow) []dto.MonthlyRevenuePoint {
	points := make([]dto.MonthlyRevenuePoint, 0, len(rows))
	index := map[[2]int]int{}
	for _, row := range rows {
		key := [2]int{row.Year, row.Month}
		if i, ok := index[key]; ok {
			points[i].Total += row.Total
			continue
		}
		index[key] = len(points)
		points = append(points, dto.MonthlyRevenuePoint{
			Year:  row.Year,
			Month: row.Month,
			Label: monthLabel(row.Year, row.Month),
			Total: row.Total,
		})
	}
	return points
}

func monthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}

func (s *analyticsService) PlanMix() (*dto.PlanMixResponse, error) {
	rows, err := s.payments.PlanMix()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	names := map[string]string{}
	if plans, perr := s.payments.FindActivePlans(); perr == nil {
		for i := range plans {
			names[plans[i].ID] = plans[i].Name
		}
	}

	entries := make([]dto.PlanMixEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.PlanMixEntry{
			PlanID:   row.PlanID,
			PlanName: names[row.PlanID],
			Payments: row.Payments,
			Total:    row.Total,
		})
	}
	return &dto.PlanMixResponse{Plans: entries}, nil
}
