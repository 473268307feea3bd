package middleware

import (
	"net/http"
	"strings"

	"github.com/productapp/api/internal/ctxkeys"
	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/service"
)

// unauthorizedBody is the fixed 401 response for protected routes. Every
// failure mode (missing header, malformed token, expired signature, unknown
// or logged-out account) collapses to this single body so rejections carry
// no oracle about why.
const unauthorizedBody = `{"status":"error","code":401,"message":"Not authorized","data":"Unauthorized"}`

// RequireAuth gates a handler behind bearer-token authorization. On success
// the resolved account is placed in the request context; otherwise the
// request is rejected with a uniform 401.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			account, ok := authorize(authService, r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody))
				return
			}

			ctx := ctxkeys.WithAccount(r.Context(), account)
			next(w, r.WithContext(ctx))
		}
	}
}

// authorize is a synchronous capability check: it extracts the bearer token
// and resolves it to a live account, or reports rejection.
func authorize(authService *service.AuthService, r *http.Request) (*model.Account, bool) {
	token := bearerToken(r)
	if token == "" {
		return nil, false
	}

	account, err := authService.ResolveFromToken(token)
	if err != nil {
		return nil, false
	}

	return account, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
