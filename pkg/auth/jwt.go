package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail parsing or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 key used when no RSA key is configured.
	Secret string

	// PrivateKeyPEM is a PEM-encoded RSA private key. When set, tokens are
	// signed with RS256.
	PrivateKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService issues and validates session tokens.
type JWTService struct {
	config     JWTConfig
	privateKey *rsa.PrivateKey
	now        func() time.Time
}

// NewJWTService creates a JWTService. An RSA private key takes precedence
// over the shared secret.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg, now: time.Now}

	switch {
	case cfg.PrivateKeyPEM != "":
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA private key: %w", err)
		}
		svc.privateKey = key
	case cfg.Secret != "":
	default:
		return nil, errors.New("jwt configuration requires PrivateKeyPEM or Secret")
	}

	if svc.config.Expiration <= 0 {
		svc.config.Expiration = time.Hour
	}
	return svc, nil
}

// IssueSessionToken signs a token bound to sessionID.
func (s *JWTService) IssueSessionToken(sessionID string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		SessionID: sessionID,
	}

	var (
		signed string
		err    error
	)
	if s.privateKey != nil {
		signed, err = jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	} else {
		signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	}
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and checks signature, expiry and issuer.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.SessionID == "" || claims.SessionID != claims.Subject {
		return nil, fmt.Errorf("%w: session claim mismatch", ErrInvalidToken)
	}
	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (any, error) {
	if s.privateKey != nil {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return &s.privateKey.PublicKey, nil
	}
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return []byte(s.config.Secret), nil
}
