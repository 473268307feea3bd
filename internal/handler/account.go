package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/productapp/api/internal/ctxkeys"
	"github.com/productapp/api/internal/service"
)

const maxAvatarUploadBytes = 10 << 20 // 10 MB

type AccountHandler struct {
	accountService *service.AccountService
	avatarService  *service.AvatarService
}

func NewAccountHandler(accountService *service.AccountService, avatarService *service.AvatarService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		avatarService:  avatarService,
	}
}

// UpdateSubscription handles PATCH /api/users
func (h *AccountHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	var req struct {
		Subscription string `json:"subscription"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Subscription == "" {
		respondMessage(w, http.StatusBadRequest, "missing required field subscription")
		return
	}

	updated, err := h.accountService.UpdateSubscription(account.ID, req.Subscription)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user": newUserResponse(updated),
	})
}

// UploadAvatar handles PATCH /api/users/avatars
func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	err := r.ParseMultipartForm(maxAvatarUploadBytes)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Warn("failed to close uploaded file", "error", closeErr)
		}
	}()

	url, err := h.avatarService.ProcessUpload(account.ID, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"avatarURL": url})
}
