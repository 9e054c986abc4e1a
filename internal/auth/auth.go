// Package auth verifies administrator credentials.
package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "admin1234"
)

// Verifier checks a submitted identity and secret.
type Verifier interface {
	Verify(ctx context.Context, identity, secret string) bool
}

// StaticVerifier accepts exactly one fixed pair. It is the built-in default
// and is meant for tests and local runs.
type StaticVerifier struct {
	Username string
	Password string
}

func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{Username: username, Password: password}
}

func (v *StaticVerifier) Verify(_ context.Context, identity, secret string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(identity), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.Password)) == 1
	return userOK && passOK
}

// BcryptVerifier accepts Username with a password matching Hash.
type BcryptVerifier struct {
	Username string
	Hash     []byte
}

func NewBcryptVerifier(username, hash string) *BcryptVerifier {
	return &BcryptVerifier{Username: username, Hash: []byte(hash)}
}

func (v *BcryptVerifier) Verify(_ context.Context, identity, secret string) bool {
	if subtle.ConstantTimeCompare([]byte(identity), []byte(v.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.Hash, []byte(secret)) == nil
}

// HashPassword creates a bcrypt hash suitable for BcryptVerifier.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// NewVerifier returns a BcryptVerifier when a hash is configured and the
// built-in static pair otherwise.
func NewVerifier(username, passwordHash string) Verifier {
	if username == "" {
		username = DefaultUsername
	}
	if passwordHash == "" {
		return NewStaticVerifier(username, DefaultPassword)
	}
	return NewBcryptVerifier(username, passwordHash)
}
