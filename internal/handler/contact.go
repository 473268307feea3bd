package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/productapp/api/internal/ctxkeys"
	"github.com/productapp/api/internal/repository"
	"github.com/productapp/api/internal/service"
	"github.com/productapp/api/internal/validation"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func (req *contactRequest) validate() string {
	if req.Name == "" {
		return "missing required field name"
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return err.Error()
	}
	if req.Phone == "" {
		return "missing required field phone"
	}
	return ""
}

// List handles GET /api/contacts?page=&limit=&favorite=
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	filter := repository.ContactFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if fav := r.URL.Query().Get("favorite"); fav != "" {
		favorite := fav == "true"
		filter.Favorite = &favorite
	}

	page, err := h.contactService.List(account.ID, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"contacts":    page.Contacts,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
	})
}

// Get handles GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	contact, err := h.contactService.ByID(account.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	var req contactRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	contact, err := h.contactService.Add(account.ID, req.Name, req.Email, req.Phone, req.Favorite)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	var req contactRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	contact, err := h.contactService.Update(account.ID, r.PathValue("id"), req.Name, req.Email, req.Phone, req.Favorite)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// SetFavorite handles PATCH /api/contacts/{id}/favorite
func (h *ContactHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	var req struct {
		Favorite *bool `json:"favorite"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Favorite == nil {
		respondMessage(w, http.StatusBadRequest, "missing field favorite")
		return
	}

	contact, err := h.contactService.SetFavorite(account.ID, r.PathValue("id"), *req.Favorite)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	err := h.contactService.Remove(account.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "contact deleted")
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
