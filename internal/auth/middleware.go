package auth

import (
	"net/http"
	"strings"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKeyClaims     = "auth_claims"
	contextKeyUserID     = "user_id"
	contextKeyEmail      = "email"
	contextKeyMembership = "membership"
)

// Middleware authenticates requests with session tokens
type Middleware struct {
	service *Service
	members repository.CompanyMemberRepositoryInterface
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(service *Service, members repository.CompanyMemberRepositoryInterface) *Middleware {
	return &Middleware{service: service, members: members}
}

// RequireAuth validates the bearer session token and sets user context
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrMissingCredentials.Error()})
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := m.service.ValidateSession(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidSessionToken.Error()})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets user context when a valid bearer token is present and
// otherwise lets the request through anonymously
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := m.service.ValidateSession(tokenString)
		if err != nil {
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// LoadMembership reads the caller's current membership row. Authorization
// decisions use this row, not the snapshot in the token. Callers without a
// membership get a nil row. Must run after RequireAuth.
func (m *Middleware) LoadMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrMissingCredentials.Error()})
			return
		}

		member, err := m.members.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to load membership")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(contextKeyMembership, member)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func setClaims(c *gin.Context, claims *SessionClaims) {
	userID, _ := claims.UserID()
	c.Set(contextKeyClaims, claims)
	c.Set(contextKeyUserID, userID)
	c.Set(contextKeyEmail, claims.Email)
	c.Request = c.Request.WithContext(logger.ContextWithUser(c.Request.Context(), claims.Email))
}

// GetUserID is a helper function to extract the caller's user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(contextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail is a helper function to extract user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(contextKeyEmail)
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetSessionClaims is a helper function to extract full session claims from context
func GetSessionClaims(c *gin.Context) (*SessionClaims, bool) {
	claims, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil, false
	}

	sessionClaims, ok := claims.(*SessionClaims)
	return sessionClaims, ok
}

// GetMembership returns the membership loaded by LoadMembership, or nil when
// the caller has none
func GetMembership(c *gin.Context) *models.CompanyMember {
	member, exists := c.Get(contextKeyMembership)
	if !exists {
		return nil
	}

	m, _ := member.(*models.CompanyMember)
	return m
}
