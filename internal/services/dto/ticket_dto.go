package dto

import "time"

type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Priority string `json:"priority" validate:"omitempty,is-priority"`
	Body     string `json:"body" validate:"required,min=1,max=5000"`
}

type ReplyTicketRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,is-ticket-status"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type TicketResponse struct {
	ID        string            `json:"id"`
	Number    string            `json:"number"`
	UserID    string            `json:"userId"`
	Subject   string            `json:"subject"`
	Priority  string            `json:"priority"`
	Status    string            `json:"status"`
	Messages  []MessageResponse `json:"messages,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type TicketListResponse struct {
	Tickets  []TicketResponse `json:"tickets"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type TicketStatsResponse struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Replied    int64 `json:"replied"`
	Closed     int64 `json:"closed"`
	Total      int64 `json:"total"`
}
