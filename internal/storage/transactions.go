package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/model"
)

// Append inserts one ledger entry. Re-applying the same entry ID is a
// no-op so a redelivered message never double-books.
func (s *SQLiteStorage) Append(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactionEntry(txn); err != nil {
		return err
	}

	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	category := txn.Category
	if category == "" {
		category = model.DefaultCategory
	}
	source := txn.Source
	if source == "" {
		source = model.SourceChat
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO transactions (id, account_id, type, amount, description, category, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.AccountID, string(txn.Direction), txn.Amount, txn.Description, category, source, createdAt)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}

// SumByDirection totals all entries of one direction for an account.
func (s *SQLiteStorage) SumByDirection(ctx context.Context, accountID string, direction model.Direction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return 0, err
	}
	if err := validateDirection(direction); err != nil {
		return 0, err
	}

	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = ? AND type = ?
	`, accountID, string(direction)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return total, nil
}

// SumByDirectionToday totals today's entries of one direction.
func (s *SQLiteStorage) SumByDirectionToday(ctx context.Context, accountID string, direction model.Direction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return 0, err
	}
	if err := validateDirection(direction); err != nil {
		return 0, err
	}

	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = ? AND type = ? AND date(created_at) = date('now')
	`, accountID, string(direction)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum today's transactions: %w", err)
	}

	return total, nil
}

// TransactionsByAccount returns an account's ledger, newest first. The
// dashboard listing uses this; the chat pipeline never does.
func (s *SQLiteStorage) TransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, type, amount, description, category, source, created_at
		FROM transactions
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction string
		if err := rows.Scan(&txn.ID, &txn.AccountID, &direction, &txn.Amount, &txn.Description, &txn.Category, &txn.Source, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Direction = model.Direction(direction)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// BalanceSummaryFor assembles the derived balance for one account.
func (s *SQLiteStorage) BalanceSummaryFor(ctx context.Context, accountID string) (model.BalanceSummary, error) {
	if err := validateContext(ctx); err != nil {
		return model.BalanceSummary{}, err
	}

	var initial int64
	err := s.db.QueryRowContext(ctx, `SELECT initial_balance FROM users WHERE id = ?`, accountID).Scan(&initial)
	if err != nil {
		return model.BalanceSummary{}, fmt.Errorf("account %q: %w", accountID, common.ErrNotFound)
	}

	income, err := s.SumByDirection(ctx, accountID, model.DirectionIncome)
	if err != nil {
		return model.BalanceSummary{}, err
	}
	expense, err := s.SumByDirection(ctx, accountID, model.DirectionExpense)
	if err != nil {
		return model.BalanceSummary{}, err
	}

	return model.BalanceSummary{
		InitialBalance: initial,
		TotalIncome:    income,
		TotalExpense:   expense,
	}, nil
}
