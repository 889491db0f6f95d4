// Package router dispatches parsed commands against the sender's account
// state. It produces side-effect requests as plain data; applying them is
// the caller's job, so routing itself never writes to storage.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/model"
	"github.com/catatuang/catatuang/internal/reply"
	"github.com/catatuang/catatuang/internal/service"
)

// CredentialSource mints a fresh random credential for onboarding and
// resets.
type CredentialSource interface {
	Generate() (plain, hash string, err error)
}

// Router routes one parsed command to a side-effect request and reply text.
type Router struct {
	accounts     service.AccountStore
	ledger       service.TransactionStore
	creds        CredentialSource
	dashboardURL string
}

// New creates a Router.
func New(accounts service.AccountStore, ledger service.TransactionStore, creds CredentialSource, dashboardURL string) *Router {
	return &Router{
		accounts:     accounts,
		ledger:       ledger,
		creds:        creds,
		dashboardURL: dashboardURL,
	}
}

// Route decides the side effect and reply for one inbound command.
//
// New-sender detection takes absolute precedence: the first message from an
// unknown canonical key always onboards, whatever its text said. Store
// failures are returned as errors for the transport's generic apology;
// parse failures never are, they arrive here as CommandUnrecognized.
func (r *Router) Route(ctx context.Context, identity model.SenderIdentity, parsed model.ParsedCommand) (model.Request, string, error) {
	account, err := r.accounts.FindByKey(ctx, identity.CanonicalKey)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return r.onboard(identity)
	case err != nil:
		return nil, "", fmt.Errorf("account lookup for %q: %w", identity.CanonicalKey, err)
	}

	switch parsed.Kind {
	case model.CommandHelp:
		return nil, reply.Help(), nil

	case model.CommandReset:
		plain, hash, err := r.creds.Generate()
		if err != nil {
			return nil, "", fmt.Errorf("credential rotation: %w", err)
		}
		req := model.CredentialRotationRequest{AccountID: account.ID, PasswordHash: hash}
		return req, reply.CredentialRotated(account.Username, plain), nil

	case model.CommandGetBalance:
		summary, err := r.balanceSummary(ctx, account)
		if err != nil {
			return nil, "", err
		}
		return model.BalanceQueryRequest{AccountID: account.ID}, reply.BalanceSummary(summary), nil

	case model.CommandSetBalance:
		req := model.BalanceUpdateRequest{AccountID: account.ID, Amount: parsed.Amount}
		return req, reply.BalanceUpdated(parsed.Amount), nil

	case model.CommandTransaction:
		req := model.TransactionCreateRequest{
			TransactionID: uuid.NewString(),
			AccountID:     account.ID,
			Direction:     parsed.Direction,
			Amount:        parsed.Amount,
			Description:   parsed.Description,
			Category:      model.DefaultCategory,
			Source:        model.SourceChat,
		}
		return req, reply.TransactionRecorded(parsed.Direction, parsed.Amount, parsed.Description), nil

	default:
		return nil, parsed.Hint, nil
	}
}

// onboard builds the account-creation request and welcome reply for a
// first-ever sender. The message content is deliberately ignored.
func (r *Router) onboard(identity model.SenderIdentity) (model.Request, string, error) {
	plain, hash, err := r.creds.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("onboarding credential: %w", err)
	}

	req := model.AccountCreationRequest{
		AccountID:      uuid.NewString(),
		CanonicalKey:   identity.CanonicalKey,
		Username:       identity.CanonicalKey,
		PasswordHash:   hash,
		InitialBalance: 0,
	}
	return req, reply.Welcome(identity.DisplayLabel, req.Username, plain, r.dashboardURL), nil
}

func (r *Router) balanceSummary(ctx context.Context, account *model.Account) (model.BalanceSummary, error) {
	income, err := r.ledger.SumByDirection(ctx, account.ID, model.DirectionIncome)
	if err != nil {
		return model.BalanceSummary{}, fmt.Errorf("income sum: %w", err)
	}
	expense, err := r.ledger.SumByDirection(ctx, account.ID, model.DirectionExpense)
	if err != nil {
		return model.BalanceSummary{}, fmt.Errorf("expense sum: %w", err)
	}
	return model.BalanceSummary{
		InitialBalance: account.InitialBalance,
		TotalIncome:    income,
		TotalExpense:   expense,
	}, nil
}
