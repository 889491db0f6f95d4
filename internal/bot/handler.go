// Package bot wires the message pipeline together: identity resolution,
// command parsing, routing, and applying the resulting side effects.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/grammar"
	"github.com/catatuang/catatuang/internal/identity"
	"github.com/catatuang/catatuang/internal/model"
	"github.com/catatuang/catatuang/internal/router"
	"github.com/catatuang/catatuang/internal/service"
)

// InboundMessage is one raw event from the chat transport.
type InboundMessage struct {
	Address         string
	DisplayName     string
	ParticipantHint string
	Text            string
}

// Handler is the single entry point the transport layer calls per message.
type Handler struct {
	resolver *identity.Resolver
	router   *router.Router
	accounts service.AccountStore
	ledger   service.TransactionStore
	contacts service.ContactCache
	locks    keyedMutex
}

// NewHandler creates a Handler. contacts may be nil when no cache is
// configured; discovered mappings are then simply not persisted.
func NewHandler(resolver *identity.Resolver, r *router.Router, accounts service.AccountStore, ledger service.TransactionStore, contacts service.ContactCache) *Handler {
	return &Handler{
		resolver: resolver,
		router:   r,
		accounts: accounts,
		ledger:   ledger,
		contacts: contacts,
	}
}

// HandleInboundMessage processes one message and returns the reply text.
// An empty reply with a nil error means the message asked for nothing
// (blank text). Errors are store failures only; the transport answers
// those with the generic apology, parse failures never surface as errors.
//
// Processing is serialized per canonical key, so two back-to-back first
// messages from a new sender produce exactly one account. Re-running the
// same message is safe: classification is pure and an already-created
// account is re-detected instead of onboarded twice.
func (h *Handler) HandleInboundMessage(ctx context.Context, msg InboundMessage) (string, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return "", nil
	}

	resolved := h.resolver.Resolve(ctx, msg.Address, msg.DisplayName, msg.ParticipantHint)
	if hint := resolved.CacheHint; hint != nil && h.contacts != nil {
		// Best effort: a failed cache write only costs a future lookup.
		if err := h.contacts.Put(ctx, hint.OpaqueAddress, hint.PhoneNumber); err != nil {
			common.LogError(err, "failed to cache contact mapping", common.Fields{
				"opaque_address": hint.OpaqueAddress,
			})
		}
	}

	key := resolved.Identity.CanonicalKey
	unlock := h.locks.Lock(key)
	defer unlock()

	started := time.Now()
	parsed := grammar.Parse(msg.Text)
	common.LogDebug("message classified", common.Fields{
		"sender":  key,
		"command": parsed.Kind,
	})

	request, replyText, err := h.router.Route(ctx, resolved.Identity, parsed)
	if err != nil {
		return "", fmt.Errorf("routing failed for %q: %w", key, err)
	}

	if request != nil {
		if err := h.apply(ctx, request); err != nil {
			return "", fmt.Errorf("applying %s for %q: %w", request.RequestName(), key, err)
		}
	}

	common.LogInfo("message handled", common.Fields{
		"sender":   key,
		"command":  parsed.Kind,
		"duration": time.Since(started),
	})
	return replyText, nil
}

// apply executes one side-effect request against the stores.
func (h *Handler) apply(ctx context.Context, request model.Request) error {
	switch req := request.(type) {
	case model.AccountCreationRequest:
		err := h.accounts.Create(ctx, &model.Account{
			ID:             req.AccountID,
			PhoneNumber:    req.CanonicalKey,
			Username:       req.Username,
			PasswordHash:   req.PasswordHash,
			InitialBalance: req.InitialBalance,
		})
		// A concurrent delivery already onboarded this sender.
		if errors.Is(err, common.ErrDuplicateEntry) {
			return nil
		}
		return err

	case model.CredentialRotationRequest:
		return h.accounts.UpdateCredential(ctx, req.AccountID, req.PasswordHash)

	case model.BalanceUpdateRequest:
		return h.accounts.UpdateInitialBalance(ctx, req.AccountID, req.Amount)

	case model.TransactionCreateRequest:
		return h.ledger.Append(ctx, &model.Transaction{
			ID:          req.TransactionID,
			AccountID:   req.AccountID,
			Direction:   req.Direction,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
			Source:      req.Source,
		})

	case model.BalanceQueryRequest:
		// Reads have no side effect to apply.
		return nil

	default:
		return fmt.Errorf("unknown request type %T", request)
	}
}
