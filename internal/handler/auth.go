package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	IssueToken(userID, email string, ttl time.Duration) (string, error)
}

// AuthHandler handles account registration and password login
type AuthHandler struct {
	userService services.UserService
	issuer      TokenIssuer
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService services.UserService, issuer TokenIssuer, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		issuer:      issuer,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// Register creates a regular user account and returns a token for it
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &services.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login exchanges email and password for a token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	expiresAt := time.Now().Add(h.tokenTTL).UTC()
	token, err := h.issuer.IssueToken(user.ID, user.Email, h.tokenTTL)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userResponse{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}
