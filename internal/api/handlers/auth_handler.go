package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	appMiddleware "github.com/markdave123-py/Metadoc/internal/api/middlewares"
	"github.com/markdave123-py/Metadoc/internal/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	users  *services.UserService
	secret []byte
	logger *zap.Logger
}

func NewAuthHandler(users *services.UserService, secret []byte, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, logger: logger}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.FirstName)
	if errors.Is(err, services.ErrInvalidUser) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Info("signup rejected", zap.String("email", req.Email), zap.Error(err))
		http.Error(w, "user exists", http.StatusConflict)
		return
	}

	h.writeToken(w, user.ID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Error("login lookup failed", zap.Error(err))
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.writeToken(w, user.ID)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, userID string) {
	token, err := appMiddleware.IssueToken(h.secret, userID, tokenTTL)
	if err != nil {
		h.logger.Error("sign token failed", zap.Error(err))
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
