package models

// Plan is a purchasable subscription plan. The catalog is seeded at
// startup and referenced by code from payments and subscriptions.
type Plan struct {
	BaseModel
	Code             string `gorm:"uniqueIndex;not null" json:"code"`
	Name             string `gorm:"not null" json:"name"`
	Price            int64  `gorm:"not null" json:"price"` // minor units
	Currency         string `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	DurationDays     int    `gorm:"not null" json:"durationDays"`
	InterviewCredits int    `gorm:"not null" json:"interviewCredits"`
	IsActive         bool   `gorm:"default:true" json:"isActive"`
}

const (
	PlanCodeFree    = "free"
	PlanCodeStarter = "starter"
	PlanCodePro     = "pro"
)

// DefaultPlans is the seed catalog.
var DefaultPlans = []Plan{
	{Code: PlanCodeFree, Name: "Free", Price: 0, Currency: "USD", DurationDays: 3650, InterviewCredits: 2, IsActive: true},
	{Code: PlanCodeStarter, Name: "Starter", Price: 99900, Currency: "USD", DurationDays: 30, InterviewCredits: 10, IsActive: true},
	{Code: PlanCodePro, Name: "Pro", Price: 249900, Currency: "USD", DurationDays: 30, InterviewCredits: 50, IsActive: true},
}
