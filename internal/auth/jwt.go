package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// Claims represents the JWT claims of an anonymous identity.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenExpiry is the default token lifetime.
const TokenExpiry = 30 * 24 * time.Hour

const keyInfo = "bamboorat anonymous identity"

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token")

// DeriveKey derives the token signing key from the API key, salted with the
// project ID.
func DeriveKey(apiKey, projectID string) ([]byte, error) {
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(apiKey), []byte(projectID), []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving signing key: %w", err)
	}
	return key, nil
}

// Service issues and verifies anonymous identities.
type Service struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewService returns a service signing with key. issuer is stored in and
// required from every token.
func NewService(key []byte, issuer string) *Service {
	return &Service{key: key, issuer: issuer, now: time.Now}
}

// SignInAnonymously creates a new anonymous identity and its token.
func (s *Service) SignInAnonymously() (Identity, string, error) {
	id := Identity{UID: uuid.NewString()}

	now := s.now()
	claims := Claims{
		UID: id.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   id.UID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return Identity{}, "", fmt.Errorf("signing token: %w", err)
	}
	return id, signed, nil
}

// Verify parses and validates a token, returning its identity.
func (s *Service) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UID: claims.UID}, nil
}

// EnsureAuthenticated returns the identity of tokenStr, or signs in
// anonymously when the token is missing or invalid. newToken is non-empty
// only when a new identity was issued.
func (s *Service) EnsureAuthenticated(tokenStr string) (id Identity, newToken string, err error) {
	if tokenStr != "" {
		if id, err := s.Verify(tokenStr); err == nil {
			return id, "", nil
		}
	}
	return s.SignInAnonymously()
}
