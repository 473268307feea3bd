package routes

import (
	"net/http"

	"github.com/productapp/api/internal/app"
	"github.com/productapp/api/internal/handler"
	"github.com/productapp/api/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	auth := handler.NewAuthHandler(a.AuthService)
	account := handler.NewAccountHandler(a.AccountService, a.AvatarService)
	contact := handler.NewContactHandler(a.ContactService)

	requireAuth := middleware.RequireAuth(a.AuthService)
	rateLimiter := middleware.RateLimitAuth()

	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /api/users/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/users/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /api/users/logout", requireAuth(auth.Logout))
	mux.HandleFunc("GET /api/users/current", requireAuth(auth.Current))
	mux.HandleFunc("GET /api/users/verify/{code}", auth.VerifyEmail)
	mux.HandleFunc("POST /api/users/verify", rateLimiter(auth.ResendVerification))
	mux.HandleFunc("PATCH /api/users", requireAuth(account.UpdateSubscription))
	mux.HandleFunc("PATCH /api/users/avatars", requireAuth(account.UploadAvatar))

	// Contacts
	mux.HandleFunc("GET /api/contacts", requireAuth(contact.List))
	mux.HandleFunc("POST /api/contacts", requireAuth(contact.Create))
	mux.HandleFunc("GET /api/contacts/{id}", requireAuth(contact.Get))
	mux.HandleFunc("PUT /api/contacts/{id}", requireAuth(contact.Update))
	mux.HandleFunc("DELETE /api/contacts/{id}", requireAuth(contact.Delete))
	mux.HandleFunc("PATCH /api/contacts/{id}/favorite", requireAuth(contact.SetFavorite))

	// Everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
	})

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
