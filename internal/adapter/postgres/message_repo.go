package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"motors/internal/domain"
)

// MessageRepo implements domain.MessageRepository on top of DB. It is a
// separate receiver type because AccountRepository and MessageRepository
// both declare GetByID with different return types.
type MessageRepo struct {
	*DB
}

// Messages returns the message repository view of the database.
func (d *DB) Messages() *MessageRepo {
	return &MessageRepo{d}
}

// ListForAccount lists messages addressed to accountID, newest first,
// with sender display names joined in.
func (d *MessageRepo) ListForAccount(ctx context.Context, accountID int64, archived bool) ([]domain.Message, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT m.message_id, m.message_subject, m.message_body, m.message_to, m.message_from,
		        m.message_created, m.message_read, m.message_archived,
		        a.account_firstname, a.account_lastname
		 FROM message m JOIN account a ON m.message_from = a.account_id
		 WHERE m.message_to = $1 AND m.message_archived = $2
		 ORDER BY m.message_created DESC`,
		accountID, archived,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var ms []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Subject, &m.Body, &m.To, &m.From,
			&m.Created, &m.Read, &m.Archived, &m.FromFirstName, &m.FromLastName); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// GetByID retrieves one message with sender display names.
func (d *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	err := d.sql.QueryRowContext(ctx,
		`SELECT m.message_id, m.message_subject, m.message_body, m.message_to, m.message_from,
		        m.message_created, m.message_read, m.message_archived,
		        a.account_firstname, a.account_lastname
		 FROM message m JOIN account a ON m.message_from = a.account_id
		 WHERE m.message_id = $1`,
		id,
	).Scan(&m.ID, &m.Subject, &m.Body, &m.To, &m.From,
		&m.Created, &m.Read, &m.Archived, &m.FromFirstName, &m.FromLastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("message by id: %w", err)
	}
	return &m, nil
}

// Send inserts a new message.
func (d *MessageRepo) Send(ctx context.Context, m *domain.Message) error {
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO message (message_subject, message_body, message_to, message_from) VALUES ($1, $2, $3, $4) RETURNING message_id, message_created",
		m.Subject, m.Body, m.To, m.From,
	).Scan(&m.ID, &m.Created)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// CountForAccount counts messages for an account filtered by archive
// state, optionally only unread ones.
func (d *MessageRepo) CountForAccount(ctx context.Context, accountID int64, archived, unreadOnly bool) (int, error) {
	query := "SELECT COUNT(*) FROM message WHERE message_to = $1 AND message_archived = $2"
	if unreadOnly {
		query += " AND message_read = FALSE"
	}
	var n int
	if err := d.sql.QueryRowContext(ctx, query, accountID, archived).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// ToggleRead flips the read flag and returns the new value.
func (d *MessageRepo) ToggleRead(ctx context.Context, id int64) (bool, error) {
	var read bool
	err := d.sql.QueryRowContext(ctx,
		"UPDATE message SET message_read = NOT message_read WHERE message_id = $1 RETURNING message_read",
		id,
	).Scan(&read)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle read: %w", err)
	}
	return read, nil
}

// ToggleArchived flips the archived flag and returns the new value.
func (d *MessageRepo) ToggleArchived(ctx context.Context, id int64) (bool, error) {
	var archived bool
	err := d.sql.QueryRowContext(ctx,
		"UPDATE message SET message_archived = NOT message_archived WHERE message_id = $1 RETURNING message_archived",
		id,
	).Scan(&archived)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle archived: %w", err)
	}
	return archived, nil
}

// Delete removes a message.
func (d *MessageRepo) Delete(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM message WHERE message_id = $1", id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
