package models

import "time"

type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`

	// Relations
	Subscription *Subscription `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:UserID" json:"payments,omitempty"`
}

// Payment is a single purchase attempt. Amounts are stored in minor
// currency units (e.g. cents) to keep revenue arithmetic exact.
type Payment struct {
	BaseModel
	UserID   string        `gorm:"type:uuid;not null;index" json:"userId"`
	OrderID  string        `gorm:"uniqueIndex;not null" json:"orderId"`
	PlanID   string        `gorm:"not null;index" json:"planId"`
	Amount   int64         `gorm:"not null" json:"amount"`
	Currency string        `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	Status   PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaidAt   *time.Time    `json:"paidAt,omitempty"`
}

// Subscription is the per-user billing state: one row per user, updated in
// place when a payment settles.
type Subscription struct {
	BaseModel
	UserID           string     `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	PlanID           string     `gorm:"not null" json:"planId"`
	IsActive         bool       `gorm:"default:false;index" json:"isActive"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	InterviewCredits int        `gorm:"default:0" json:"interviewCredits"`
	InterviewsUsed   int        `gorm:"default:0" json:"interviewsUsed"`
}

// CreditsLeft returns the remaining interview credits, never negative.
func (s *Subscription) CreditsLeft() int {
	left := s.InterviewCredits - s.InterviewsUsed
	if left < 0 {
		return 0
	}
	return left
}
