package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"motors/internal/domain"
)

func newDBWithMock(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewWithSQL(db), mock, db
}

var accountRows = []string{"account_id", "account_firstname", "account_lastname", "account_email", "account_password", "account_type"}

func TestGetByEmail_Found(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	q := `SELECT\s+account_id.*FROM account WHERE account_email = \$1`
	rows := sqlmock.NewRows(accountRows).
		AddRow(7, "Ada", "Lovelace", "a@example.com", "$2a$10$hash", "Employee")
	mock.ExpectQuery(q).WithArgs("a@example.com").WillReturnRows(rows)

	got, err := d.GetByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 7 || got.Role != domain.RoleEmployee {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM account WHERE account_email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := d.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_UnknownRoleFailsClosed(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(accountRows).
		AddRow(3, "Bob", "Smith", "b@example.com", "$2a$10$hash", "Superuser")
	mock.ExpectQuery(`FROM account WHERE account_id = \$1`).WithArgs(int64(3)).WillReturnRows(rows)

	got, err := d.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Role != domain.RoleClient {
		t.Fatalf("unknown role should map to Client, got %q", got.Role)
	}
}

func TestCreate_ReturnsInsertedAccount(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	q := `INSERT INTO account \(account_firstname, account_lastname, account_email, account_password\)`
	rows := sqlmock.NewRows(accountRows).
		AddRow(11, "Ada", "Lovelace", "a@example.com", "$2a$10$hash", "Client")
	mock.ExpectQuery(q).
		WithArgs("Ada", "Lovelace", "a@example.com", "$2a$10$hash").
		WillReturnRows(rows)

	got, err := d.Create(context.Background(), "Ada", "Lovelace", "a@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 11 || got.Role != domain.RoleClient {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestEmailExists(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := d.EmailExists(context.Background(), "a@example.com", 7)
	if err != nil {
		t.Fatalf("EmailExists error: %v", err)
	}
	if !ok {
		t.Fatal("expected email to exist")
	}
}

func TestUpdateProfile_MissingRow(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE account SET account_firstname`).
		WithArgs("Ada", "Lovelace", "a@example.com", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := d.UpdateProfile(context.Background(), 99, "Ada", "Lovelace", "a@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	d, mock, db := newDBWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE account SET account_password = \$1 WHERE account_id = \$2`).
		WithArgs("$2a$10$newhash", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := d.UpdatePassword(context.Background(), 7, "$2a$10$newhash"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}
