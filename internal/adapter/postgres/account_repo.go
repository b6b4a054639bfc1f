package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"motors/internal/domain"
)

const accountColumns = "account_id, account_firstname, account_lastname, account_email, account_password, account_type"

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	var role string
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Role = domain.ParseRole(role)
	return &a, nil
}

// GetByEmail retrieves an account by its unique email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM account WHERE account_email = $1",
		email,
	))
}

// GetByID retrieves an account by id.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM account WHERE account_id = $1",
		id,
	))
}

// Create inserts a new account with the default Client role.
func (d *DB) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"INSERT INTO account (account_firstname, account_lastname, account_email, account_password) VALUES ($1, $2, $3, $4) RETURNING "+accountColumns,
		firstName, lastName, email, passwordHash,
	))
}

// EmailExists reports whether email is registered to an account other
// than excludeID. Pass zero to check against all accounts.
func (d *DB) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := d.sql.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM account WHERE account_email = $1 AND account_id <> $2)",
		email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates name and email for one account.
func (d *DB) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE account SET account_firstname = $1, account_lastname = $2, account_email = $3 WHERE account_id = $4",
		firstName, lastName, email, id,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireRow(res)
}

// UpdatePassword replaces the stored password hash for one account.
func (d *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE account SET account_password = $1 WHERE account_id = $2",
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireRow(res)
}

// List returns all accounts ordered by name.
func (d *DB) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM account ORDER BY account_firstname, account_lastname",
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accts []domain.Account
	for rows.Next() {
		var a domain.Account
		var role string
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &role); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Role = domain.ParseRole(role)
		accts = append(accts, a)
	}
	return accts, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
