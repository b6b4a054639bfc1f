package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"motors/internal/domain"
)

func newMessageRepoWithMock(t *testing.T) (*MessageRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	d, mock, db := newDBWithMock(t)
	return d.Messages(), mock, db
}

var messageRows = []string{
	"message_id", "message_subject", "message_body", "message_to", "message_from",
	"message_created", "message_read", "message_archived",
	"account_firstname", "account_lastname",
}

func TestListForAccount(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	rows := sqlmock.NewRows(messageRows).
		AddRow(1, "Hello", "body", 7, 3, created, false, false, "Bob", "Smith")
	mock.ExpectQuery(`FROM message m JOIN account a`).
		WithArgs(int64(7), false).
		WillReturnRows(rows)

	ms, err := d.ListForAccount(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("ListForAccount error: %v", err)
	}
	if len(ms) != 1 || ms[0].FromFirstName != "Bob" || ms[0].To != 7 {
		t.Fatalf("unexpected messages: %+v", ms)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE m.message_id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := d.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSend_PopulatesIDAndCreated(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`INSERT INTO message`).
		WithArgs("Hi", "body", int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"message_id", "message_created"}).AddRow(5, created))

	m := &domain.Message{Subject: "Hi", Body: "body", To: 7, From: 3}
	if err := d.Send(context.Background(), m); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if m.ID != 5 || !m.Created.Equal(created) {
		t.Fatalf("unexpected message after send: %+v", m)
	}
}

func TestCountForAccount_UnreadOnly(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`AND message_read = FALSE`).
		WithArgs(int64(7), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := d.CountForAccount(context.Background(), 7, false, true)
	if err != nil {
		t.Fatalf("CountForAccount error: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
}

func TestToggleRead(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE message SET message_read = NOT message_read`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"message_read"}).AddRow(true))

	read, err := d.ToggleRead(context.Background(), 9)
	if err != nil {
		t.Fatalf("ToggleRead error: %v", err)
	}
	if !read {
		t.Fatal("expected read = true after toggle")
	}
}

func TestDelete(t *testing.T) {
	d, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM message WHERE message_id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := d.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
