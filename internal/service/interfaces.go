// Package service defines the interfaces for all application collaborators.
package service

import (
	"context"

	"github.com/catatuang/catatuang/internal/model"
)

// AccountStore is the persistence contract for accounts. Missing rows are
// reported with common.ErrNotFound.
type AccountStore interface {
	FindByKey(ctx context.Context, key string) (*model.Account, error)
	Create(ctx context.Context, account *model.Account) error
	UpdateCredential(ctx context.Context, accountID, passwordHash string) error
	UpdateInitialBalance(ctx context.Context, accountID string, amount int64) error
}

// TransactionStore is the persistence contract for the ledger.
type TransactionStore interface {
	Append(ctx context.Context, txn *model.Transaction) error
	SumByDirection(ctx context.Context, accountID string, direction model.Direction) (int64, error)
	SumByDirectionToday(ctx context.Context, accountID string, direction model.Direction) (int64, error)
}

// ContactCache maps anonymized chat addresses to previously discovered
// phone numbers.
type ContactCache interface {
	Get(ctx context.Context, opaqueAddress string) (string, error)
	Put(ctx context.Context, opaqueAddress, phoneNumber string) error
}

// NetworkIdentityLookup asks the chat network for the phone number behind
// an anonymized address. Implementations may block; callers bound the call
// with a context deadline and treat a timeout as a miss.
type NetworkIdentityLookup interface {
	Lookup(ctx context.Context, opaqueAddress string) (string, error)
}
