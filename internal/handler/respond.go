package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/productapp/api/internal/repository"
	"github.com/productapp/api/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps domain errors onto HTTP status codes. Anything
// unrecognized is an internal error and is logged, not leaked.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailInUse):
		respondMessage(w, http.StatusConflict, "Email in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Email or password is wrong")
	case errors.Is(err, service.ErrAlreadyVerified):
		respondMessage(w, http.StatusBadRequest, "Verification has already been passed")
	case errors.Is(err, service.ErrInvalidImage):
		respondMessage(w, http.StatusBadRequest, "Uploaded file is not a valid image")
	case errors.Is(err, service.ErrInvalidSubscription):
		respondMessage(w, http.StatusBadRequest, "Subscription must be one of: starter, pro, business")
	case errors.Is(err, repository.ErrAccountNotFound), errors.Is(err, repository.ErrCodeNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, repository.ErrContactNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("internal error", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
