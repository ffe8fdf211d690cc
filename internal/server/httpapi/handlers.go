// Package httpapi exposes the account and login services over HTTP. Handlers
// are thin: decode JSON, call the service, map the typed error to a status
// code. All invariants live in the services.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/logging"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/dmitrijs2005/accounts/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserServiceInterface is the account service surface the handlers need.
type UserServiceInterface interface {
	GetByID(ctx context.Context, id string) (*models.UserView, error)
	GetAll(ctx context.Context) ([]*models.UserView, error)
	Create(ctx context.Context, name, login, password string) (*models.UserView, error)
	Update(ctx context.Context, p services.UpdateParams) (*models.UserView, error)
	Delete(ctx context.Context, id string) error
}

// LoginServiceInterface is the auth service surface the handlers need.
type LoginServiceInterface interface {
	Authenticate(ctx context.Context, creds models.Credentials) (string, error)
	ValidateToken(ctx context.Context, token string) (*models.UserView, error)
}

// Handler bundles the HTTP handlers for the accounts API.
type Handler struct {
	users  UserServiceInterface
	logins LoginServiceInterface
	logger logging.Logger
}

func NewHandler(users UserServiceInterface, logins LoginServiceInterface, logger logging.Logger) *Handler {
	return &Handler{
		users:  users,
		logins: logins,
		logger: logger.With("module", "httpapi"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	NewPasswordConfirm string `json:"newPasswordConfirm"`
}

type validateRequest struct {
	Token string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP status codes:
// NotFound -> 404; Conflict, Validation, InvalidCredentials, MissingToken and
// InvalidToken -> 400; MissingSecret and anything unexpected -> 500. Internal
// detail never reaches the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrMissingSecret):
		h.logger.Error(r.Context(), "server misconfiguration", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "server configuration error"})
	default:
		h.logger.Error(r.Context(), "unexpected error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	token, err := h.logins.Authenticate(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Validate handles POST /api/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.logins.ValidateToken(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetAll handles GET /api/users.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	views, err := h.users.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if views == nil {
		views = []*models.UserView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// GetByID handles GET /api/users/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Create handles POST /api/users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.users.Create(r.Context(), req.Name, req.Login, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Update handles PUT /api/users/{id}. The path id must match the body id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if id != req.ID {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "request path id and request body id values must match",
		})
		return
	}

	view, err := h.users.Update(r.Context(), services.UpdateParams{
		ID:                 req.ID,
		Name:               req.Name,
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /api/users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Ping handles GET /ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
