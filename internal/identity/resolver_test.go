package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/model"
)

type fakeContacts struct {
	entries map[string]string
	gets    int
	puts    int
}

func newFakeContacts() *fakeContacts {
	return &fakeContacts{entries: make(map[string]string)}
}

func (f *fakeContacts) Get(_ context.Context, opaqueAddress string) (string, error) {
	f.gets++
	if number, ok := f.entries[opaqueAddress]; ok {
		return number, nil
	}
	return "", common.ErrNotFound
}

func (f *fakeContacts) Put(_ context.Context, opaqueAddress, phoneNumber string) error {
	f.puts++
	f.entries[opaqueAddress] = phoneNumber
	return nil
}

type fakeNetwork struct {
	err    error
	number string
	calls  int
}

func (f *fakeNetwork) Lookup(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.number, f.err
}

// blockingNetwork never answers; it only honors cancellation.
type blockingNetwork struct{}

func (blockingNetwork) Lookup(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestResolveStandardAddress(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		wantKey   string
		wantLabel string
	}{
		{
			name:      "local number with leading zero",
			address:   "08123456789@s.whatsapp.net",
			wantKey:   "628123456789",
			wantLabel: "08123456789",
		},
		{
			name:      "already international",
			address:   "628123456789@s.whatsapp.net",
			wantKey:   "628123456789",
			wantLabel: "08123456789",
		},
		{
			name:      "bare national number",
			address:   "8123456789@s.whatsapp.net",
			wantKey:   "628123456789",
			wantLabel: "08123456789",
		},
	}

	r := NewResolver(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(context.Background(), tt.address, "", "")
			assert.Equal(t, tt.wantKey, res.Identity.CanonicalKey)
			assert.Equal(t, tt.wantLabel, res.Identity.DisplayLabel)
			assert.Equal(t, model.AddressStandard, res.Identity.Kind)
			assert.Nil(t, res.CacheHint)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver(nil, nil)
	ctx := context.Background()

	first := r.Resolve(ctx, "08123456789@s.whatsapp.net", "", "")
	second := r.Resolve(ctx, "08123456789@s.whatsapp.net", "", "")
	assert.Equal(t, first.Identity.CanonicalKey, second.Identity.CanonicalKey)

	// Feeding the canonical key back in returns it unchanged.
	again := r.Resolve(ctx, first.Identity.CanonicalKey, "", "")
	assert.Equal(t, first.Identity.CanonicalKey, again.Identity.CanonicalKey)
}

func TestResolveAnonymizedParticipantHint(t *testing.T) {
	contacts := newFakeContacts()
	network := &fakeNetwork{}
	r := NewResolver(contacts, network)

	res := r.Resolve(context.Background(), "123456789012345@lid", "Budi", "08123456789@s.whatsapp.net")

	assert.Equal(t, "628123456789", res.Identity.CanonicalKey)
	assert.Equal(t, "08123456789", res.Identity.DisplayLabel)
	assert.Equal(t, model.AddressAnonymized, res.Identity.Kind)
	require.NotNil(t, res.CacheHint)
	assert.Equal(t, "123456789012345", res.CacheHint.OpaqueAddress)
	assert.Equal(t, "628123456789", res.CacheHint.PhoneNumber)

	// The hint satisfied resolution: neither fallback ran.
	assert.Zero(t, contacts.gets)
	assert.Zero(t, network.calls)
}

func TestResolveRejectsAnonymizedHint(t *testing.T) {
	contacts := newFakeContacts()
	r := NewResolver(contacts, &fakeNetwork{})

	// A hint that is itself anonymized cannot recover the number; the next
	// strategy (contact cache) runs instead.
	res := r.Resolve(context.Background(), "123456789012345@lid", "", "999888777666555@lid")

	assert.Equal(t, "123456789012345@lid", res.Identity.CanonicalKey)
	assert.Equal(t, 1, contacts.gets)
}

func TestResolveContactCacheShortCircuitsNetwork(t *testing.T) {
	contacts := newFakeContacts()
	contacts.entries["123456789012345"] = "628123456789"
	network := &fakeNetwork{number: "62999"}
	r := NewResolver(contacts, network)

	res := r.Resolve(context.Background(), "123456789012345@lid", "", "")

	assert.Equal(t, "628123456789", res.Identity.CanonicalKey)
	assert.Zero(t, network.calls, "cached mapping must prevent the network lookup")
	assert.Nil(t, res.CacheHint, "already-cached mappings need no cache hint")
}

func TestResolveNetworkLookupSuccess(t *testing.T) {
	network := &fakeNetwork{number: "08123456789"}
	r := NewResolver(newFakeContacts(), network)

	res := r.Resolve(context.Background(), "123456789012345@lid", "", "")

	assert.Equal(t, "628123456789", res.Identity.CanonicalKey)
	require.NotNil(t, res.CacheHint)
	assert.Equal(t, "628123456789", res.CacheHint.PhoneNumber)
}

func TestResolveNetworkTimeoutFallsThrough(t *testing.T) {
	r := NewResolver(newFakeContacts(), blockingNetwork{}, WithLookupTimeout(10*time.Millisecond))

	start := time.Now()
	res := r.Resolve(context.Background(), "123456789012345@lid", "", "")
	elapsed := time.Since(start)

	assert.Equal(t, "123456789012345@lid", res.Identity.CanonicalKey)
	assert.Less(t, elapsed, time.Second, "timeout must bound the lookup")
}

func TestResolveAnonymizedFallbackLabels(t *testing.T) {
	r := NewResolver(nil, nil)
	ctx := context.Background()

	withName := r.Resolve(ctx, "123456789012345@lid", "Budi", "")
	assert.Equal(t, "Budi", withName.Identity.DisplayLabel)

	anonymous := r.Resolve(ctx, "123456789012345@lid", "", "")
	assert.Equal(t, "User-2345", anonymous.Identity.DisplayLabel)

	// Fallback keys are stable across messages.
	again := r.Resolve(ctx, "123456789012345@lid", "", "")
	assert.Equal(t, anonymous.Identity.CanonicalKey, again.Identity.CanonicalKey)
}

func TestResolveCustomCountryCode(t *testing.T) {
	r := NewResolver(nil, nil, WithCountryCode("60"))
	res := r.Resolve(context.Background(), "0123456789@s.whatsapp.net", "", "")
	assert.Equal(t, "60123456789", res.Identity.CanonicalKey)
	assert.Equal(t, "0123456789", res.Identity.DisplayLabel)
}
