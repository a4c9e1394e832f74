package dto

import "time"

type CreateOrderRequest struct {
	PlanCode string `json:"planCode" validate:"required,oneof=free starter pro"`
}

type OrderResponse struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type PaymentResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"orderId"`
	PlanID    string     `json:"planId"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SubscriptionResponse struct {
	PlanID           string     `json:"planId"`
	PlanCode         string     `json:"planCode,omitempty"`
	IsActive         bool       `json:"isActive"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	InterviewCredits int        `json:"interviewCredits"`
	InterviewsUsed   int        `json:"interviewsUsed"`
	CreditsLeft      int        `json:"creditsLeft"`
}

type PlanResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Price            int64  `json:"price"`
	Currency         string `json:"currency"`
	DurationDays     int    `json:"durationDays"`
	InterviewCredits int    `json:"interviewCredits"`
}
