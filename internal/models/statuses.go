package models

type UserRole string
type UserStatus string
type EmployeeStatus string
type TicketStatus string
type TicketPriority string
type MessageSender string
type InterviewStatus string
type PaymentStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"

	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusReplied    TicketStatus = "Replied"
	TicketStatusClosed     TicketStatus = "Closed"

	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"

	MessageSenderUser  MessageSender = "user"
	MessageSenderAdmin MessageSender = "admin"

	InterviewStatusStarted    InterviewStatus = "started"
	InterviewStatusInProgress InterviewStatus = "in-progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
	InterviewStatusAbandoned  InterviewStatus = "abandoned"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ValidTicketStatuses is used by the custom validator rules.
var ValidTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusReplied,
	TicketStatusClosed,
}

var ValidInterviewStatuses = []InterviewStatus{
	InterviewStatusStarted,
	InterviewStatusInProgress,
	InterviewStatusCompleted,
	InterviewStatusAbandoned,
}
