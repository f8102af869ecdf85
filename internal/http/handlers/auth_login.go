package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"restropos-services/internal/auth"
	"restropos-services/pkg/response"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	var (
		managerID    int64
		name         string
		role         string
		passwordHash string
		storeID      pgtype.Int8
	)
	err := h.DB.QueryRow(r.Context(), `
        select id, name, role, password_hash, store_id
        from managers
        where email = $1 and is_active = true
    `, email).Scan(&managerID, &name, &role, &passwordHash, &storeID)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	if err != nil {
		h.Logger.Error("login lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(body.Password)) != nil {
		response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	var storePtr *int64
	if storeID.Valid {
		storePtr = &storeID.Int64
	}

	ttl := time.Duration(h.Config.JWTExpirySeconds) * time.Second
	token, err := auth.IssueToken(managerID, auth.Role(role), email, storePtr, h.Config.JWTSecret, ttl)
	if err != nil {
		h.Logger.Error("token issue failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(w, map[string]any{
		"token": token,
		"manager": map[string]any{
			"id":    managerID,
			"name":  name,
			"email": email,
			"role":  role,
		},
		"expiresIn": h.Config.JWTExpirySeconds,
	})
}
