// Package identity derives a stable account key from the unreliable
// addressing the chat network supplies.
//
// Standard addresses encode the sender's phone number directly. Anonymized
// addresses do not, so the resolver walks an ordered chain of recovery
// strategies and, when all of them miss, falls back to the opaque address
// itself as a stable (if unfriendly) key.
package identity

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/catatuang/catatuang/internal/model"
	"github.com/catatuang/catatuang/internal/service"
)

const (
	// StandardSuffix marks an address that encodes a phone number.
	StandardSuffix = "@s.whatsapp.net"
	// AnonymizedSuffix marks a platform-internal identifier.
	AnonymizedSuffix = "@lid"

	// Plausible digit counts for a phone number recovered from a hint.
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// DefaultCountryCode is prepended when normalizing national numbers.
const DefaultCountryCode = "62"

// DefaultLookupTimeout bounds the network identity lookup.
const DefaultLookupTimeout = 3 * time.Second

// Resolver turns raw chat addresses into SenderIdentity values. It is
// side-effect-free: cache updates are returned as hints for the caller.
type Resolver struct {
	contacts      service.ContactCache
	network       service.NetworkIdentityLookup
	countryCode   string
	lookupTimeout time.Duration
}

// Result is a resolved identity plus, when a fallback lookup succeeded, a
// hint the caller should persist so the lookup is never needed again.
type Result struct {
	CacheHint *model.ContactHint
	Identity  model.SenderIdentity
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCountryCode overrides the default country code.
func WithCountryCode(code string) Option {
	return func(r *Resolver) { r.countryCode = code }
}

// WithLookupTimeout overrides the network lookup bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.lookupTimeout = d }
}

// NewResolver creates a resolver. Both collaborators may be nil, in which
// case the corresponding fallback step is skipped.
func NewResolver(contacts service.ContactCache, network service.NetworkIdentityLookup, opts ...Option) *Resolver {
	r := &Resolver{
		contacts:      contacts,
		network:       network,
		countryCode:   DefaultCountryCode,
		lookupTimeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve derives the canonical key and display label for one sender.
// Resolution is idempotent: feeding a previously returned canonical key
// back in yields the same key.
func (r *Resolver) Resolve(ctx context.Context, address, displayName, participantHint string) Result {
	if strings.HasSuffix(address, AnonymizedSuffix) {
		return r.resolveAnonymized(ctx, address, displayName, participantHint)
	}

	number := r.normalizeNumber(strings.TrimSuffix(address, StandardSuffix))
	return Result{
		Identity: model.SenderIdentity{
			RawAddress:   address,
			CanonicalKey: number,
			DisplayLabel: r.localForm(number),
			Kind:         model.AddressStandard,
		},
	}
}

// resolveAnonymized walks the fallback chain in order, stopping at the
// first strategy that recovers a phone number.
func (r *Resolver) resolveAnonymized(ctx context.Context, address, displayName, participantHint string) Result {
	opaque := strings.TrimSuffix(address, AnonymizedSuffix)

	// 1. Participant hint, if it is not itself anonymized and looks like a
	// phone number.
	if number, ok := r.numberFromHint(participantHint); ok {
		return r.recovered(address, number, &model.ContactHint{OpaqueAddress: opaque, PhoneNumber: number})
	}

	// 2. Previously cached mapping.
	if r.contacts != nil {
		if cached, err := r.contacts.Get(ctx, opaque); err == nil && cached != "" {
			return r.recovered(address, r.normalizeNumber(cached), nil)
		}
	}

	// 3. Network lookup, bounded and best-effort. A timeout is a miss, not
	// an error the sender ever sees.
	if r.network != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
		number, err := r.network.Lookup(lookupCtx, opaque)
		cancel()
		switch {
		case err != nil:
			slog.Debug("network identity lookup failed",
				"address", address, "error", err)
		case number != "":
			number = r.normalizeNumber(number)
			return r.recovered(address, number, &model.ContactHint{OpaqueAddress: opaque, PhoneNumber: number})
		}
	}

	// 4. All strategies missed: the opaque address itself is the key. It is
	// stable, so the sender still maps to one account.
	return Result{
		Identity: model.SenderIdentity{
			RawAddress:   address,
			CanonicalKey: address,
			DisplayLabel: r.pseudoName(displayName, opaque),
			Kind:         model.AddressAnonymized,
		},
	}
}

func (r *Resolver) recovered(address, number string, hint *model.ContactHint) Result {
	return Result{
		Identity: model.SenderIdentity{
			RawAddress:   address,
			CanonicalKey: number,
			DisplayLabel: r.localForm(number),
			Kind:         model.AddressAnonymized,
		},
		CacheHint: hint,
	}
}

func (r *Resolver) numberFromHint(hint string) (string, bool) {
	if hint == "" || strings.HasSuffix(hint, AnonymizedSuffix) {
		return "", false
	}
	digits := digitsOnly(strings.TrimSuffix(hint, StandardSuffix))
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", false
	}
	return r.normalizeNumber(digits), true
}

// normalizeNumber converts any accepted phone-number spelling to
// international form: "08123..." and "8123..." both become "628123...".
// Already-international input passes through unchanged, which is what makes
// resolution idempotent.
func (r *Resolver) normalizeNumber(raw string) string {
	digits := digitsOnly(raw)
	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "0"):
		return r.countryCode + digits[1:]
	case strings.HasPrefix(digits, r.countryCode):
		return digits
	default:
		return r.countryCode + digits
	}
}

// localForm renders an international number the way locals write it, with
// the country code folded back into a leading zero.
func (r *Resolver) localForm(number string) string {
	if strings.HasPrefix(number, r.countryCode) {
		return "0" + number[len(r.countryCode):]
	}
	return number
}

// pseudoName derives a deterministic label for senders whose number could
// not be recovered and who set no display name.
func (r *Resolver) pseudoName(displayName, opaque string) string {
	if displayName != "" {
		return displayName
	}
	digits := digitsOnly(opaque)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	if digits == "" {
		return "User"
	}
	return "User-" + digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
