package handler

import (
	"encoding/json"
	"net/http"

	"github.com/productapp/api/internal/ctxkeys"
	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/service"
	"github.com/productapp/api/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL,omitempty"`
}

func newUserResponse(account *model.Account) userResponse {
	resp := userResponse{
		Email:        account.Email,
		Subscription: account.Subscription,
	}
	if account.AvatarURL != nil {
		resp.AvatarURL = *account.AvatarURL
	}
	return resp
}

// Signup handles POST /api/users/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = validation.ValidateEmail(req.Email)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	err = validation.ValidatePassword(req.Password)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authService.Signup(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user": newUserResponse(account),
	})
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = validation.ValidateEmail(req.Email)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	err = validation.ValidatePassword(req.Password)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	token, account, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": userResponse{
			Email:        account.Email,
			Subscription: account.Subscription,
		},
	})
}

// Logout handles GET /api/users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	err := h.authService.Logout(account.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Current handles GET /api/users/current
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	respondJSON(w, http.StatusOK, userResponse{
		Email:        account.Email,
		Subscription: account.Subscription,
	})
}

// VerifyEmail handles GET /api/users/verify/{code}
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	_, err := h.authService.VerifyEmail(code)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Verification successful")
}

// ResendVerification handles POST /api/users/verify
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "missing required field email")
		return
	}

	err = h.authService.ResendVerification(req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Verification email sent")
}
