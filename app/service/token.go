package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-session/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the payload carried by both token classes: the user id in
// the registered Subject plus the email.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService signs and verifies the two token classes with independent
// secrets and TTLs. A leaked access-token secret therefore cannot forge
// refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (s *TokenService) AccessTokenTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTokenTTL() time.Duration { return s.refreshTTL }

// GenerateTokenPair signs both tokens from the same payload. The two
// signing operations are independent and run concurrently.
func (s *TokenService) GenerateTokenPair(userID, email string) (*TokenPair, error) {
	pair := &TokenPair{}

	var g errgroup.Group
	g.Go(func() error {
		token, err := s.sign(userID, email, s.accessSecret, s.accessTTL)
		if err != nil {
			return err
		}
		pair.AccessToken = token
		return nil
	})
	g.Go(func() error {
		token, err := s.sign(userID, email, s.refreshSecret, s.refreshTTL)
		if err != nil {
			return err
		}
		pair.RefreshToken = token
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *TokenService) VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return s.verify(tokenString, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *TokenService) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti: without it two tokens signed within the same
			// second would be byte-identical, and rotation must always
			// produce a fresh credential.
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify is strict: an expired token fails parsing regardless of signature
// validity.
func (s *TokenService) verify(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
