package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rolodex/cmd/identity"
	"rolodex/cmd/internal/contacts"
)

// Stable user-facing messages. The credential and authorization messages are
// deliberately generic: login failure never reveals whether the username or
// the password was wrong, and unauthorized never distinguishes a missing
// header from an unknown or stale token.
const (
	msgInvalidCredentials = "username or password wrong"
	msgUnauthorized       = "unauthorized"
	msgDuplicateUsername  = "username already registered"
	msgNotFound           = "not found"
	msgInvalidBody        = "invalid request body"
	msgServerError        = "internal server error"
)

const maxNameLen = 100

// Handler wires the HTTP JSON endpoints to the identity and contact stores.
type Handler struct {
	log *slog.Logger
	cfg Config

	users    identity.Store
	contacts contacts.Store

	dummyHash string
}

// NewHandler constructs the API handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, contactStore contacts.Store) *Handler {
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{
		log:      log,
		cfg:      cfg,
		users:    users,
		contacts: contactStore,
	}

	// Dummy hash for timing-resistant login checks.
	if hash, err := identity.HashPassword("dummy-password-for-timing-only"); err == nil {
		h.dummyHash = hash
	}

	return h
}

// Register wires all API routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}

	mux.HandleFunc("POST /api/users", h.handleRegister)
	mux.HandleFunc("POST /api/users/login", h.handleLogin)
	mux.HandleFunc("GET /api/users/current", h.handleUserCurrent)
	mux.HandleFunc("PATCH /api/users/current", h.handleUserUpdate)
	mux.HandleFunc("DELETE /api/users/logout", h.handleLogout)

	mux.HandleFunc("POST /api/contacts", h.handleContactCreate)
	mux.HandleFunc("GET /api/contacts", h.handleContactList)
	mux.HandleFunc("GET /api/contacts/{id}", h.handleContactGet)
	mux.HandleFunc("PUT /api/contacts/{id}", h.handleContactUpdate)
	mux.HandleFunc("DELETE /api/contacts/{id}", h.handleContactDelete)

	mux.HandleFunc("POST /api/contacts/{id}/addresses", h.handleAddressCreate)
	mux.HandleFunc("GET /api/contacts/{id}/addresses", h.handleAddressList)
	mux.HandleFunc("GET /api/contacts/{id}/addresses/{addressID}", h.handleAddressGet)
	mux.HandleFunc("PUT /api/contacts/{id}/addresses/{addressID}", h.handleAddressUpdate)
	mux.HandleFunc("DELETE /api/contacts/{id}/addresses/{addressID}", h.handleAddressDelete)
}

// ---- user handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	errs := FieldErrors{}
	errs.Required("username", req.Username)
	errs.MaxLen("username", req.Username, maxNameLen)
	errs.Required("name", req.Name)
	errs.MaxLen("name", req.Name, maxNameLen)
	errs.Required("password", req.Password)
	errs.MaxLen("password", req.Password, maxNameLen)
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		h.log.Error("api.register.hash.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	u, err := h.users.CreateUser(r.Context(), identity.CreateUserInput{
		Username:     strings.TrimSpace(req.Username),
		Name:         req.Name,
		PasswordHash: hash,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		if identity.IsConflict(err) {
			writeFieldErrors(w, http.StatusBadRequest, FieldErrors{"username": {msgDuplicateUsername}})
			return
		}
		h.log.Error("api.register.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	h.auditRegister(r, u.ID, u.Username)
	writeData(w, http.StatusCreated, toUserResponse(u, nil))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	errs := FieldErrors{}
	errs.Required("username", req.Username)
	errs.Required("password", req.Password)
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	ctx := r.Context()

	u, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if identity.IsNotFound(err) {
			// Timing resistance: perform a dummy verify when the user is missing.
			if h.dummyHash != "" {
				_, _ = identity.VerifyPassword(req.Password, h.dummyHash)
			}
			h.auditLoginFailed(r, req.Username, "unknown_user")
			writeMessageError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.log.Error("api.login.lookup.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	ok, err := identity.VerifyPassword(req.Password, u.PasswordHash)
	if err != nil || !ok {
		h.auditLoginFailed(r, req.Username, "bad_password")
		writeMessageError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	// Fresh token on every login; any prior token is overwritten, never appended.
	token, err := identity.NewSessionToken(32)
	if err != nil {
		h.log.Error("api.login.token.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if err := h.users.SetToken(ctx, u.ID, &token, time.Now().UTC()); err != nil {
		h.log.Error("api.login.set_token.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	h.auditLoginSuccess(r, u.ID, u.Username)
	writeData(w, http.StatusOK, toUserResponse(u, &token))
}

func (h *Handler) handleUserCurrent(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	writeData(w, http.StatusOK, toUserResponse(u, nil))
}

func (h *Handler) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	errs := FieldErrors{}
	if req.Name != nil {
		errs.MaxLen("name", *req.Name, maxNameLen)
	}
	if req.Password != nil {
		errs.MaxLen("password", *req.Password, maxNameLen)
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var hashPtr *string
	if req.Password != nil {
		hash, err := identity.HashPassword(*req.Password)
		if err != nil {
			h.log.Error("api.user_update.hash.fail", "err", err)
			writeMessageError(w, http.StatusInternalServerError, msgServerError)
			return
		}
		hashPtr = &hash
	}

	// Both mutations land in one store call, so a failure leaves the profile
	// untouched rather than half-patched.
	if req.Name != nil || hashPtr != nil {
		if err := h.users.UpdateProfile(r.Context(), u.ID, req.Name, hashPtr, time.Now().UTC()); err != nil {
			h.log.Error("api.user_update.fail", "err", err)
			writeMessageError(w, http.StatusInternalServerError, msgServerError)
			return
		}
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if hashPtr != nil {
		h.auditCredentialChange(r, u.ID)
	}

	writeData(w, http.StatusOK, toUserResponse(u, nil))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	if err := h.users.SetToken(r.Context(), u.ID, nil, time.Now().UTC()); err != nil {
		h.log.Error("api.logout.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	h.auditLogout(r, u.ID)
	writeData(w, http.StatusOK, statusResponse{Status: "true"})
}

// ---- auth guard ----

// requireAuth resolves the Authorization header (raw session token, no Bearer
// scheme) to a user. Missing, unknown, and stale tokens all get the same
// generic 401.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if token == "" {
		writeMessageError(w, http.StatusUnauthorized, msgUnauthorized)
		return identity.User{}, false
	}

	u, err := h.users.GetUserByToken(r.Context(), token)
	if err != nil {
		if identity.IsNotFound(err) {
			writeMessageError(w, http.StatusUnauthorized, msgUnauthorized)
			return identity.User{}, false
		}
		h.log.Error("api.auth.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return identity.User{}, false
	}

	return u, true
}
