package domain

import (
	"context"
	"time"
)

// Message is an internal note sent between two accounts.
type Message struct {
	ID        int64
	Subject   string
	Body      string
	To        int64
	From      int64
	Created   time.Time
	Read      bool
	Archived  bool
	// Sender display fields, populated by listing queries.
	FromFirstName string
	FromLastName  string
}

// MessageRepository defines the port for message persistence operations.
type MessageRepository interface {
	ListForAccount(ctx context.Context, accountID int64, archived bool) ([]Message, error)
	GetByID(ctx context.Context, id int64) (*Message, error)
	Send(ctx context.Context, m *Message) error
	CountForAccount(ctx context.Context, accountID int64, archived, unreadOnly bool) (int, error)
	ToggleRead(ctx context.Context, id int64) (bool, error)
	ToggleArchived(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
