package app

import (
	"context"
	"errors"
	"fmt"

	"motors/internal/domain"
)

// ErrNotMessageOwner indicates the viewer is not the message recipient.
var ErrNotMessageOwner = errors.New("message belongs to another account")

// MessageService handles the internal message exchange between accounts.
type MessageService struct {
	messages domain.MessageRepository
}

// NewMessageService creates a new message service.
func NewMessageService(messages domain.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Inbox lists messages sent to accountID, newest first. archived selects
// the archive view instead of the live inbox.
func (s *MessageService) Inbox(ctx context.Context, accountID int64, archived bool) ([]domain.Message, error) {
	return s.messages.ListForAccount(ctx, accountID, archived)
}

// View loads one message, enforcing that viewerID is the recipient.
func (s *MessageService) View(ctx context.Context, messageID, viewerID int64) (*domain.Message, error) {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.To != viewerID {
		return nil, ErrNotMessageOwner
	}
	return m, nil
}

// Send stores a new message from senderID.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID int64, subject, body string) error {
	m := &domain.Message{
		Subject: subject,
		Body:    body,
		To:      recipientID,
		From:    senderID,
	}
	if err := s.messages.Send(ctx, m); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// UnreadCount counts unread, unarchived messages for the account badge.
func (s *MessageService) UnreadCount(ctx context.Context, accountID int64) (int, error) {
	return s.messages.CountForAccount(ctx, accountID, false, true)
}

// ArchivedCount counts archived messages.
func (s *MessageService) ArchivedCount(ctx context.Context, accountID int64) (int, error) {
	return s.messages.CountForAccount(ctx, accountID, true, false)
}

// InboxCount counts unarchived messages.
func (s *MessageService) InboxCount(ctx context.Context, accountID int64) (int, error) {
	return s.messages.CountForAccount(ctx, accountID, false, false)
}

// ToggleRead flips the read flag and returns the new value.
func (s *MessageService) ToggleRead(ctx context.Context, messageID int64) (bool, error) {
	return s.messages.ToggleRead(ctx, messageID)
}

// ToggleArchived flips the archived flag and returns the new value.
func (s *MessageService) ToggleArchived(ctx context.Context, messageID int64) (bool, error) {
	return s.messages.ToggleArchived(ctx, messageID)
}

// Delete removes a message permanently.
func (s *MessageService) Delete(ctx context.Context, messageID int64) error {
	return s.messages.Delete(ctx, messageID)
}
