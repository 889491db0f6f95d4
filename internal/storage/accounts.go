package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/model"
)

// FindByKey looks up an account by its canonical key. Missing accounts are
// reported with common.ErrNotFound.
func (s *SQLiteStorage) FindByKey(ctx context.Context, key string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, phone_number, username, password_hash, initial_balance, created_at
		FROM users
		WHERE phone_number = ?
	`, key)

	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.PhoneNumber,
		&account.Username,
		&account.PasswordHash,
		&account.InitialBalance,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	return &account, nil
}

// Create inserts a new account. A second creation for the same canonical
// key reports common.ErrDuplicateEntry, which callers treat as "already
// onboarded" rather than a failure.
func (s *SQLiteStorage) Create(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, phone_number, username, password_hash, initial_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, account.ID, account.PhoneNumber, account.Username, account.PasswordHash, account.InitialBalance, createdAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %q: %w", account.PhoneNumber, common.ErrDuplicateEntry)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// UpdateCredential replaces the account's password hash.
func (s *SQLiteStorage) UpdateCredential(ctx context.Context, accountID, passwordHash string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}
	if err := validateString(passwordHash, "passwordHash"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ? WHERE id = ?
	`, passwordHash, accountID)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	return requireRowChanged(result, accountID)
}

// UpdateInitialBalance replaces the account's initial balance.
func (s *SQLiteStorage) UpdateInitialBalance(ctx context.Context, accountID string, amount int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: initial balance", ErrNegativeAmount)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET initial_balance = ? WHERE id = ?
	`, amount, accountID)
	if err != nil {
		return fmt.Errorf("failed to update initial balance: %w", err)
	}
	return requireRowChanged(result, accountID)
}

func requireRowChanged(result sql.Result, accountID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %q: %w", accountID, common.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
