package service

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configurable cost. The same primitive
// covers account passwords and refresh tokens at rest, so a stolen database
// never yields a usable credential of either kind.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashToken hashes a signed token for at-rest storage. bcrypt rejects
// inputs longer than 72 bytes and JWTs always exceed that, so the token is
// digested to a fixed-length hex string first.
func (h *PasswordHasher) HashToken(token string) (string, error) {
	return h.Hash(digestToken(token))
}

func (h *PasswordHasher) VerifyToken(token, hash string) bool {
	return h.Verify(digestToken(token), hash)
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
