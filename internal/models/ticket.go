package models

// Ticket is a support request with a human-readable number and a message
// thread. Status moves freely between the four values; there is no guard
// preventing repeated or backwards transitions. A reply from the owning
// user on a Closed ticket reopens it, a reply from an admin marks it
// Replied.
type Ticket struct {
	BaseModel
	Number   string         `gorm:"uniqueIndex;not null" json:"number"` // TKT-xxxxxx
	UserID   string         `gorm:"type:uuid;not null;index" json:"userId"`
	Subject  string         `gorm:"not null" json:"subject"`
	Priority TicketPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Status   TicketStatus   `gorm:"type:varchar(20);not null;default:'Open';index" json:"status"`

	Conversation *Conversation `gorm:"foreignKey:TicketID" json:"conversation,omitempty"`
}

// Conversation is the thread backing a ticket's reply history.
type Conversation struct {
	BaseModel
	TicketID string    `gorm:"type:uuid;not null;uniqueIndex" json:"ticketId"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

type Message struct {
	BaseModel
	ConversationID string        `gorm:"type:uuid;not null;index" json:"conversationId"`
	SenderID       string        `gorm:"type:uuid;not null" json:"senderId"`
	Sender         MessageSender `gorm:"type:varchar(20);not null" json:"sender"`
	Body           string        `gorm:"type:text;not null" json:"body"`
}
