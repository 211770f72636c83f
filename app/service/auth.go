package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-session/app/entity"
	"github.com/vibast-solutions/ms-go-session/app/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEmailExists         = errors.New("email is already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccessDenied        = errors.New("access denied")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRefreshTokenHash(ctx context.Context, id string, hash sql.NullString) error
}

// AuthService orchestrates signup, signin, refresh-token rotation, and
// logout. All session state lives on the user record: the bcrypt hash of
// the one currently valid refresh token.
type AuthService struct {
	userRepo userRepository
	tokens   *TokenService
	hasher   *PasswordHasher

	// Coalesces concurrent refreshes of the same presented token: one
	// rotation runs, the duplicates share its result.
	refreshGroup singleflight.Group
}

func NewAuthService(userRepo userRepository, tokens *TokenService, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates the user record and opens its first session. The unique
// index on email is the authoritative duplicate check; the ExistsByEmail
// pre-check only spares a bcrypt hash on the common conflict path.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*TokenPair, *entity.PublicUser, error) {
	email = NormalizeEmail(email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailExists
		}
		return nil, nil, err
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	return pair, user.Public(), nil
}

// Signin verifies credentials and rotates in a fresh session. The unknown
// email and wrong password outcomes are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	// Overwrites whatever session existed before: signing in elsewhere
	// invalidates it.
	if err := s.storeRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// Refresh rotates the session. The comparison against the stored hash is
// the source of truth: a rotated-out, logged-out, or forged token fails
// here even while its signature is still valid.
func (s *AuthService) Refresh(ctx context.Context, userID, presented string) (*TokenPair, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.RefreshTokenHash.Valid {
		return nil, ErrAccessDenied
	}

	if !s.hasher.VerifyToken(presented, user.RefreshTokenHash.String) {
		logrus.WithField("user_id", userID).Warn("Refresh token mismatch, possible replay of a rotated token")
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// RefreshFromToken is the cookie entry point: verify the raw token's
// signature and expiry, then delegate to Refresh with its subject. Every
// validation failure collapses to ErrInvalidRefreshToken so the caller
// cannot tell which stage rejected it. Concurrent calls presenting the
// same token share a single rotation.
func (s *AuthService) RefreshFromToken(ctx context.Context, rawToken string) (*TokenPair, error) {
	// The rotation result is shared by every coalesced caller, so it must
	// not die with whichever request happened to start the flight.
	flightCtx := context.WithoutCancel(ctx)

	v, err, _ := s.refreshGroup.Do(rawToken, func() (interface{}, error) {
		claims, err := s.tokens.VerifyRefreshToken(rawToken)
		if err != nil {
			return nil, ErrInvalidRefreshToken
		}

		pair, err := s.Refresh(flightCtx, claims.Subject, rawToken)
		if err != nil {
			if errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInvalidRefreshToken) {
				return nil, ErrInvalidRefreshToken
			}
			return nil, err
		}
		return pair, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TokenPair), nil
}

// Logout drops the stored refresh-token hash. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, sql.NullString{})
}

func (s *AuthService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return s.tokens.VerifyAccessToken(tokenString)
}

func (s *AuthService) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	hash, err := s.hasher.HashToken(refreshToken)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, sql.NullString{String: hash, Valid: true})
}
