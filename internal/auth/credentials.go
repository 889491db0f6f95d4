// Package auth generates and verifies account credentials.
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// passwordChars avoids characters that are easy to misread in chat
// (0/O, 1/l/I).
const passwordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

const passwordLength = 8

// Generator produces random credentials and their bcrypt hashes.
type Generator struct {
	cost int
}

// NewGenerator creates a Generator with the given bcrypt cost. A cost of 0
// selects bcrypt.DefaultCost.
func NewGenerator(cost int) *Generator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Generator{cost: cost}
}

// Generate returns a fresh plaintext password and its hash. The plaintext
// is shown to the user exactly once; only the hash is stored.
func (g *Generator) Generate() (plain, hash string, err error) {
	buf := make([]byte, passwordLength)
	maxIndex := big.NewInt(int64(len(passwordChars)))
	for i := range buf {
		n, randErr := rand.Int(rand.Reader, maxIndex)
		if randErr != nil {
			return "", "", fmt.Errorf("failed to generate password: %w", randErr)
		}
		buf[i] = passwordChars[n.Int64()]
	}
	plain = string(buf)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), g.cost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	return plain, string(hashed), nil
}

// HashPassword hashes a caller-chosen password (dashboard password change).
func (g *Generator) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
