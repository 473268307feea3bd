package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/productapp/api/internal/ctxkeys"
	"github.com/productapp/api/internal/db"
	"github.com/productapp/api/internal/repository"
	"github.com/productapp/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentNotifier struct{}

func (silentNotifier) SendVerification(email, code string) error { return nil }

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	issuer := service.NewTokenIssuer("test-secret", time.Hour)
	return service.NewAuthService(repository.NewAccountRepository(conn), silentNotifier{}, issuer)
}

func TestRequireAuth(t *testing.T) {
	auth := newTestAuthService(t)

	account, err := auth.Signup("a@x.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, account.VerificationCode)

	_, err = auth.VerifyEmail(*account.VerificationCode)
	require.NoError(t, err)

	token, _, err := auth.Login("a@x.com", "password123")
	require.NoError(t, err)

	var seenEmail string
	handler := RequireAuth(auth)(func(w http.ResponseWriter, r *http.Request) {
		current := ctxkeys.Account(r.Context())
		if current != nil {
			seenEmail = current.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header is rejected with the fixed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/users/current", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})

	t.Run("malformed token is rejected with the fixed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})

	t.Run("basic scheme is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "Basic "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler with the account in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a@x.com", seenEmail)
	})

	t.Run("token stops working after logout", func(t *testing.T) {
		require.NoError(t, auth.Logout(account.ID))

		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	})
}
