package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebtran/interview-agent/internal/config"
	"github.com/calebtran/interview-agent/internal/db"
)

// UserStore is the persistence slice the auth flow needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// RegisterRequest is the register/login request body.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse returns the token and the user's public fields.
type AuthResponse struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	users      UserStore
	passwords  *config.PasswordConfig
	jwtService *JWTService
	validator  *validator.Validate
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(users UserStore, passwords *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		passwords:  passwords,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// Register creates a user and returns a fresh token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	existing, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		writeError(w, &ErrEmailAlreadyExists{Email: req.Email})
		return
	}

	hashed, err := h.passwords.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, hashed)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil || !h.passwords.VerifyPassword(req.Password, user.HashedPassword) {
		writeError(w, &ErrInvalidCredentials{})
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request) (RegisterRequest, bool) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, validationError(err))
		return req, false
	}
	return req, true
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *db.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(AuthResponse{Token: token, User: user})
}

// validationError converts the first validator error into an ErrValidation.
func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &ErrValidation{Field: errs[0].Field(), Message: errs[0].Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// writeError maps an error to a status and writes the JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
