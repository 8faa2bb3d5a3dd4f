package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/erazemk/camorent/internal/auth"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/store"
)

// Messages shared by login and signup.
const (
	msgCredentialsRequired = "Email and password required"
	msgInvalidCredentials  = "Invalid email or password"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB          *sql.DB
	Hasher      *auth.Hasher
	TokenSecret string
}

type credentialsRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type authResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		serverError(w, r, "Login failed", err)
		return
	}
	// Unknown email and wrong password look the same to the client.
	if user == nil || !h.Hasher.Verify(req.Password, user.PasswordHash) {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if h.respondWithToken(w, r, user, "Login failed") {
		slog.Info("user logged in", "user", user.ID)
	}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	if utf8.RuneCountInString(req.Password) < model.MinPasswordLength {
		jsonError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !strings.Contains(req.Email, "@") {
		jsonError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	existing, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		serverError(w, r, "Signup failed", err)
		return
	}
	if existing != nil {
		jsonError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}

	name := model.DefaultName(req.Email)
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name = strings.TrimSpace(*req.Name)
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		serverError(w, r, "Signup failed", err)
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.Email, name, hash)
	if err != nil {
		serverError(w, r, "Signup failed", err)
		return
	}

	if h.respondWithToken(w, r, user, "Signup failed") {
		slog.Info("user signed up", "user", user.ID, "scheme", h.Hasher.Scheme())
	}
}

// decodeCredentials reads and normalizes an email/password body, writing a
// 400 when either is missing.
func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, msgCredentialsRequired)
		return req, false
	}
	req.Email = model.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, msgCredentialsRequired)
		return req, false
	}
	return req, true
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, user *model.User, failure string) bool {
	token, err := auth.IssueToken(h.TokenSecret, user.ID, user.Email)
	if err != nil {
		serverError(w, r, failure, err)
		return false
	}
	jsonResponse(w, http.StatusOK, authResponse{Success: true, User: user, Token: token})
	return true
}
