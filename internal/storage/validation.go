package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/catatuang/catatuang/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDirection ensures a direction is one of the two known values.
func validateDirection(direction model.Direction) error {
	switch direction {
	case model.DirectionIncome, model.DirectionExpense:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
}

// validateAccount validates a single account.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if account.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if account.PhoneNumber == "" {
		return fmt.Errorf("%w: missing phone number", ErrInvalidAccount)
	}
	if account.Username == "" {
		return fmt.Errorf("%w: missing username", ErrInvalidAccount)
	}
	if account.PasswordHash == "" {
		return fmt.Errorf("%w: missing password hash", ErrInvalidAccount)
	}
	if account.InitialBalance < 0 {
		return fmt.Errorf("%w: initial balance", ErrNegativeAmount)
	}
	return nil
}

// validateTransactionEntry validates a single ledger entry.
func validateTransactionEntry(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	if txn.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: amount", ErrNegativeAmount)
	}
	return validateDirection(txn.Direction)
}
