package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"tcgladder/internal/middleware"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Repo      *repositories.UserRepository
	JWTSecret string
}

func NewAuthHandler(repo *repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{Repo: repo, JWTSecret: jwtSecret}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "validation_error", Message: "username, email and password are required"})
		return
	}
	if !utils.IsPasswordValid(req.Password) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "validation_error", Message: "password must be at least 8 characters with a special character"})
		return
	}

	if existing, _ := h.Repo.GetUserByUsername(req.Username); existing != nil {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{Code: "conflict", Message: "username taken"})
		return
	}
	if existing, _ := h.Repo.GetUserByEmail(req.Email); existing != nil {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{Code: "conflict", Message: "email taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "failed to hash password"})
		return
	}
	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: string(hash)}
	if err := h.Repo.CreateUser(user); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "failed to create user"})
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"eloLifetime": user.EloLifetime,
		"eloSeasonal": user.EloSeasonal,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Code: "invalid_json", Message: "invalid payload"})
		return
	}
	user, err := h.Repo.GetUserByUsername(req.Username)
	if err != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "failed to sign token"})
		return
	}
	utils.JSON(w, http.StatusOK, authResponse{Token: signed})
}

// LogoutHandler exists for client symmetry. Tokens are stateless, so there
// is nothing to revoke server-side.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// MeHandler returns the authenticated caller's account.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.GetUserByID(middleware.UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
