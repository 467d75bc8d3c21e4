package auth

import (
	"fmt"
	"time"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind tells a session token apart from an invitation token so one can
// never be presented in place of the other.
type TokenKind string

const (
	TokenKindSession    TokenKind = "session"
	TokenKindInvitation TokenKind = "invitation"
)

// tokenClaims carries the fields shared by every token the service issues
type tokenClaims struct {
	Kind TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

func (t *tokenClaims) base() *tokenClaims { return t }

// Claims is implemented by SessionClaims and InvitationClaims
type Claims interface {
	jwt.Claims
	base() *tokenClaims
	kind() TokenKind
}

// SessionClaims identify a caller. CompanyID and Role are a snapshot taken
// at login and are null for users without a company.
type SessionClaims struct {
	Email     string             `json:"email" example:"john.doe@example.com"`
	CompanyID *uuid.UUID         `json:"company_id" swaggertype:"string"`
	Role      *models.MemberRole `json:"role" swaggertype:"string" example:"Admin"`
	tokenClaims
}

func (c *SessionClaims) kind() TokenKind { return TokenKindSession }

// UserID returns the subject of the token as a UUID
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// InvitationClaims grant membership in CompanyID when redeemed. NewMemberEmail
// is set only for invitations addressed to a specific person.
type InvitationClaims struct {
	CompanyID      uuid.UUID         `json:"company_id"`
	Role           models.MemberRole `json:"role"`
	Position       string            `json:"position"`
	NewMemberEmail string            `json:"new_member_email,omitempty"`
	tokenClaims
}

func (c *InvitationClaims) kind() TokenKind { return TokenKindInvitation }

// Targeted reports whether the invitation is bound to one email address
func (c *InvitationClaims) Targeted() bool {
	return c.NewMemberEmail != ""
}

// TokenCodec signs and verifies HS256 tokens with the process-wide secret
type TokenCodec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenCodec creates a codec for the given signing secret
func NewTokenCodec(secret, issuer string) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock returns a copy of the codec that reads time from now
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *c
	clone.now = now
	return &clone
}

// Encode stamps claims with kind, issuer, issue time and an expiry of now+ttl
// and returns the signed compact token. The result is base64url and safe to
// put in a query string.
func (c *TokenCodec) Encode(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := c.now()
	b := claims.base()
	b.Kind = claims.kind()
	b.Issuer = c.issuer
	b.IssuedAt = jwt.NewNumericDate(now)
	b.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString and fills claims. Bad signatures, other
// algorithms, malformed input, missing or passed expiry and a kind that does
// not match claims all fail with an InvalidTokenError.
func (c *TokenCodec) Decode(tokenString string, claims Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return apperrors.NewInvalidTokenError("Invalid or expired token", err)
	}
	if !token.Valid {
		return apperrors.NewInvalidTokenError("Invalid or expired token", nil)
	}
	if claims.base().Kind != claims.kind() {
		return apperrors.NewInvalidTokenError("Invalid or expired token",
			fmt.Errorf("expected %s token, got %q", claims.kind(), claims.base().Kind))
	}
	return nil
}
