package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catatuang/catatuang/internal/common"
)

// Get returns the cached phone number for an anonymized address, or
// common.ErrNotFound when no mapping has been observed yet.
func (s *SQLiteStorage) Get(ctx context.Context, opaqueAddress string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(opaqueAddress, "opaqueAddress"); err != nil {
		return "", err
	}

	var number string
	err := s.db.QueryRowContext(ctx, `
		SELECT phone_number FROM contacts WHERE opaque_address = ?
	`, opaqueAddress).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("contact %q: %w", opaqueAddress, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query contact: %w", err)
	}

	return number, nil
}

// Put records a discovered mapping. Later discoveries overwrite earlier
// ones; the platform can re-anonymize, the phone number cannot change.
func (s *SQLiteStorage) Put(ctx context.Context, opaqueAddress, phoneNumber string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(opaqueAddress, "opaqueAddress"); err != nil {
		return err
	}
	if err := validateString(phoneNumber, "phoneNumber"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (opaque_address, phone_number, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(opaque_address) DO UPDATE SET
			phone_number = excluded.phone_number,
			updated_at = excluded.updated_at
	`, opaqueAddress, phoneNumber, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store contact: %w", err)
	}

	return nil
}
