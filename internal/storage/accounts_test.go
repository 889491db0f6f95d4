package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catatuang/catatuang/internal/common"
	"github.com/catatuang/catatuang/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testAccount(id, key string) *model.Account {
	return &model.Account{
		ID:           id,
		PhoneNumber:  key,
		Username:     key,
		PasswordHash: "$2a$10$hash",
	}
}

func TestCreateAndFindAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("acct-1", "628123456789")))

	found, err := store.FindByKey(ctx, "628123456789")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", found.ID)
	assert.Equal(t, "628123456789", found.PhoneNumber)
	assert.Equal(t, "628123456789", found.Username)
	assert.Equal(t, int64(0), found.InitialBalance)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestFindMissingAccount(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindByKey(context.Background(), "628000000000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateDuplicateAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("acct-1", "628123456789")))

	err := store.Create(ctx, testAccount("acct-2", "628123456789"))
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestCreateRejectsInvalidAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Create(ctx, &model.Account{ID: "acct-1"})
	assert.ErrorIs(t, err, ErrInvalidAccount)

	err = store.Create(ctx, nil)
	assert.Error(t, err)
}

func TestUpdateCredential(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("acct-1", "628123456789")))
	require.NoError(t, store.UpdateCredential(ctx, "acct-1", "$2a$10$newhash"))

	found, err := store.FindByKey(ctx, "628123456789")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhash", found.PasswordHash)
	// Rotation touches the hash only.
	assert.Equal(t, "628123456789", found.Username)
}

func TestUpdateCredentialMissingAccount(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateCredential(context.Background(), "acct-missing", "$2a$10$hash")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateInitialBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("acct-1", "628123456789")))
	require.NoError(t, store.UpdateInitialBalance(ctx, "acct-1", 1000000))

	found, err := store.FindByKey(ctx, "628123456789")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), found.InitialBalance)

	err = store.UpdateInitialBalance(ctx, "acct-1", -1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
