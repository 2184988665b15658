package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// UserType discriminates the three principal kinds a token can name.
type UserType string

const (
	UserTypeUser       UserType = "user"
	UserTypeInstructor UserType = "instructor"
	UserTypeCustomer   UserType = "customer"
)

// ErrInvalidToken is returned for any malformed, tampered or expired token.
// Business-level checks (record missing, account inactive) are the caller's job.
var ErrInvalidToken = errors.New("invalid_token")

// Claims is the payload embedded in every access token.
type Claims struct {
	UserType     UserType `json:"user_type"`
	CustomerID   string   `json:"customer_id,omitempty"`
	InstructorID string   `json:"instructor_id,omitempty"`
	jwt.RegisteredClaims
}

// NewClaims builds the claims for one principal. Customer tokens also get
// CustomerID and InstructorID set by the caller.
func NewClaims(subject string, userType UserType) Claims {
	return Claims{
		UserType:         userType,
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}
}

// Issuer signs and verifies access tokens with a process-wide secret.
// The secret is fixed at construction; rotating it invalidates all
// outstanding tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. An empty secret is replaced by a random one,
// which only survives the current process.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = base64.RawURLEncoding.EncodeToString(buf)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given subject and principal kind.
// Expiry is stamped from the issuer TTL.
func (i *Issuer) Issue(claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parses and validates a raw token. It fails only for cryptographic,
// format or expiry problems, always with ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserType == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL reports the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
