package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"business-hub-backend/internal/database/models"
	"business-hub-backend/internal/logger"
	"business-hub-backend/internal/repository"
	"business-hub-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type middlewareFixture struct {
	http     *testutils.HTTPTestSuite
	service  *Service
	tenant   *testutils.Tenant
	outsider *models.User
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	cfg := testutils.NewTestConfig()
	db := testutils.NewSQLiteDB(t)
	fs := testutils.NewFactorySet()
	members := repository.NewCompanyMemberRepository(db)

	service := NewService(cfg, repository.NewUserRepository(db), members,
		NewTokenCodec(cfg.JWTSecret, cfg.AppName), NewHasher(cfg.BcryptCost))
	mw := NewMiddleware(service, members)

	h := testutils.SetupHTTPTest()
	h.Router.GET("/private", mw.RequireAuth(), mw.LoadMembership(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		member := GetMembership(c)
		resp := gin.H{
			"user_id":  userID.String(),
			"email":    email,
			"log_user": logger.WithContext(c.Request.Context()).Data["user"],
		}
		if member != nil {
			resp["role"] = member.Role
		}
		c.JSON(http.StatusOK, resp)
	})
	h.Router.GET("/public", mw.OptionalAuth(), func(c *gin.Context) {
		_, authenticated := GetSessionClaims(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	return &middlewareFixture{
		http:     h,
		service:  service,
		tenant:   fs.SeedTenant(t, db),
		outsider: fs.SeedUser(t, db, "outsider@example.com", ""),
	}
}

func (f *middlewareFixture) token(t *testing.T, user *models.User) string {
	resp, err := f.service.IssueSession(context.Background(), user)
	require.NoError(t, err)
	return resp.AccessToken
}

func TestRequireAuth(t *testing.T) {
	f := newMiddlewareFixture(t)

	t.Run("missing header", func(t *testing.T) {
		rec := f.http.MakeRequest(http.MethodGet, "/private", nil)
		testutils.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Authentication required")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := f.http.MakeRequestWithHeaders(http.MethodGet, "/private", nil, map[string]string{"Authorization": "Basic abc"})
		testutils.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid authorization header format")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := f.http.MakeAuthRequest(http.MethodGet, "/private", "garbage", nil)
		testutils.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired session token")
	})

	t.Run("expired token", func(t *testing.T) {
		old := f.service.codec.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		claims := &SessionClaims{Email: f.tenant.Admin.Email}
		claims.Subject = f.tenant.Admin.ID.String()
		token, err := old.Encode(claims, time.Hour)
		require.NoError(t, err)

		rec := f.http.MakeAuthRequest(http.MethodGet, "/private", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token loads the current membership", func(t *testing.T) {
		var body map[string]interface{}
		rec := f.http.MakeAuthRequest(http.MethodGet, "/private", f.token(t, f.tenant.Admin), nil)
		testutils.AssertJSONResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, f.tenant.Admin.ID.String(), body["user_id"])
		assert.Equal(t, f.tenant.Admin.Email, body["log_user"])
		assert.Equal(t, "Admin", body["role"])
	})

	t.Run("user without company has no membership", func(t *testing.T) {
		var body map[string]interface{}
		rec := f.http.MakeAuthRequest(http.MethodGet, "/private", f.token(t, f.outsider), nil)
		testutils.AssertJSONResponse(t, rec, http.StatusOK, &body)
		assert.NotContains(t, body, "role")
	})
}

func TestOptionalAuth(t *testing.T) {
	f := newMiddlewareFixture(t)

	var body map[string]bool
	rec := f.http.MakeRequest(http.MethodGet, "/public", nil)
	testutils.AssertJSONResponse(t, rec, http.StatusOK, &body)
	assert.False(t, body["authenticated"])

	rec = f.http.MakeAuthRequest(http.MethodGet, "/public", "garbage", nil)
	testutils.AssertJSONResponse(t, rec, http.StatusOK, &body)
	assert.False(t, body["authenticated"])

	rec = f.http.MakeAuthRequest(http.MethodGet, "/public", f.token(t, f.outsider), nil)
	testutils.AssertJSONResponse(t, rec, http.StatusOK, &body)
	assert.True(t, body["authenticated"])
}
