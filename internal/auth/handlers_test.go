package auth

import (
	"net/http"
	"net/url"
	"testing"

	"business-hub-backend/internal/repository"
	"business-hub-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	cfg := testutils.NewTestConfig()
	db := testutils.NewSQLiteDB(t)
	hasher := NewHasher(cfg.BcryptCost)
	service := NewService(cfg, repository.NewUserRepository(db), repository.NewCompanyMemberRepository(db),
		NewTokenCodec(cfg.JWTSecret, cfg.AppName), hasher)

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	testutils.NewFactorySet().SeedUser(t, db, "carol@example.com", hash)

	h := testutils.SetupHTTPTest()
	h.Router.POST("/users/login", NewHandler(service).Login)

	t.Run("json body", func(t *testing.T) {
		var resp TokenResponse
		rec := h.MakeRequest(http.MethodPost, "/users/login", map[string]string{"username": "carol@example.com", "password": "pw"})
		testutils.AssertJSONResponse(t, rec, http.StatusOK, &resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("email alias", func(t *testing.T) {
		rec := h.MakeRequest(http.MethodPost, "/users/login", map[string]string{"email": "carol@example.com", "password": "pw"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form body", func(t *testing.T) {
		rec := h.MakeFormRequest(http.MethodPost, "/users/login", url.Values{"username": {"carol@example.com"}, "password": {"pw"}})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := h.MakeRequest(http.MethodPost, "/users/login", map[string]string{"username": "carol@example.com", "password": "nope"})
		testutils.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid email or password")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := h.MakeRequest(http.MethodPost, "/users/login", map[string]string{"username": "carol@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
