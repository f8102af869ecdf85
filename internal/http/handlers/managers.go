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

type managerPayload struct {
	ID        int64     `json:"id"`
	StoreID   *int64    `json:"storeId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type managerRequest struct {
	StoreID  *int64  `json:"storeId"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (b managerRequest) validate(requirePassword bool) string {
	if strings.TrimSpace(b.Name) == "" {
		return "Manager name is required"
	}
	if !strings.Contains(b.Email, "@") {
		return "A valid email is required"
	}
	if requirePassword && len(b.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	if b.Password != "" && len(b.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	switch auth.Role(b.Role) {
	case auth.RoleAdmin, auth.RoleManager:
	default:
		return "Role must be ADMIN or MANAGER"
	}
	return ""
}

func scanManager(row pgx.Row) (managerPayload, error) {
	var (
		m       managerPayload
		storeID pgtype.Int8
		phone   pgtype.Text
	)
	err := row.Scan(&m.ID, &storeID, &m.Name, &m.Email, &phone, &m.Role, &m.IsActive, &m.CreatedAt)
	if err != nil {
		return managerPayload{}, err
	}
	if storeID.Valid {
		m.StoreID = &storeID.Int64
	}
	m.Phone = textOrDefault(phone, "")
	return m, nil
}

func (h *Handler) ManagersList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
        select id, store_id, name, email, phone, role, is_active, created_at
        from managers order by name
    `)
	if err != nil {
		h.Logger.Error("managers list failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch managers")
		return
	}
	defer rows.Close()

	managers := []managerPayload{}
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			h.Logger.Error("managers scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch managers")
			return
		}
		managers = append(managers, m)
	}
	response.Success(w, managers)
}

func (h *Handler) ManagerCreate(w http.ResponseWriter, r *http.Request) {
	var body managerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if body.Role == "" {
		body.Role = string(auth.RoleManager)
	}
	if msg := body.validate(true); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error("password hash failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create manager")
		return
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	manager, err := scanManager(h.DB.QueryRow(r.Context(), `
        insert into managers (store_id, name, email, phone, password_hash, role, is_active)
        values ($1, $2, $3, $4, $5, $6, $7)
        returning id, store_id, name, email, phone, role, is_active, created_at
    `, body.StoreID, strings.TrimSpace(body.Name), strings.ToLower(strings.TrimSpace(body.Email)),
		textPtr(body.Phone), string(hash), body.Role, active))
	if err != nil {
		if isUniqueViolation(err) {
			response.Error(w, http.StatusConflict, "DUPLICATE", "Email already registered")
			return
		}
		h.Logger.Error("manager create failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create manager")
		return
	}
	response.Created(w, manager)
}

func (h *Handler) ManagerGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid manager id")
		return
	}

	manager, err := scanManager(h.DB.QueryRow(r.Context(), `
        select id, store_id, name, email, phone, role, is_active, created_at
        from managers where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Manager not found")
		return
	}
	if err != nil {
		h.Logger.Error("manager get failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch manager")
		return
	}
	response.Success(w, manager)
}

// ManagerUpdate rewrites the profile fields; the password changes only when a
// new one is supplied.
func (h *Handler) ManagerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid manager id")
		return
	}

	var body managerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if body.Role == "" {
		body.Role = string(auth.RoleManager)
	}
	if msg := body.validate(false); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	args := []any{id, body.StoreID, strings.TrimSpace(body.Name),
		strings.ToLower(strings.TrimSpace(body.Email)), textPtr(body.Phone), body.Role, active}
	query := `
        update managers
        set store_id = $2, name = $3, email = $4, phone = $5, role = $6, is_active = $7
        where id = $1
        returning id, store_id, name, email, phone, role, is_active, created_at
    `
	if body.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			h.Logger.Error("password hash failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update manager")
			return
		}
		args = append(args, string(hash))
		query = `
        update managers
        set store_id = $2, name = $3, email = $4, phone = $5, role = $6, is_active = $7,
            password_hash = $8
        where id = $1
        returning id, store_id, name, email, phone, role, is_active, created_at
    `
	}

	manager, err := scanManager(h.DB.QueryRow(r.Context(), query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Manager not found")
		return
	}
	if err != nil {
		if isUniqueViolation(err) {
			response.Error(w, http.StatusConflict, "DUPLICATE", "Email already registered")
			return
		}
		h.Logger.Error("manager update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update manager")
		return
	}
	response.Success(w, manager)
}

func (h *Handler) ManagerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid manager id")
		return
	}

	tag, err := h.DB.Exec(r.Context(), `delete from managers where id = $1`, id)
	if err != nil {
		h.Logger.Error("manager delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete manager")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Manager not found")
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
