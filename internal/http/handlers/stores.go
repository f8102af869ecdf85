package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"restropos-services/pkg/response"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type storePayload struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type storeRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

func (b storeRequest) validate() string {
	if strings.TrimSpace(b.Code) == "" {
		return "Store code is required"
	}
	if strings.TrimSpace(b.Name) == "" {
		return "Store name is required"
	}
	return ""
}

func scanStore(row pgx.Row) (storePayload, error) {
	var (
		s       storePayload
		address pgtype.Text
		phone   pgtype.Text
	)
	err := row.Scan(&s.ID, &s.Code, &s.Name, &address, &phone, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return storePayload{}, err
	}
	s.Address = textOrDefault(address, "")
	s.Phone = textOrDefault(phone, "")
	return s, nil
}

func (h *Handler) StoresList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
        select id, code, name, address, phone, is_active, created_at
        from stores order by name
    `)
	if err != nil {
		h.Logger.Error("stores list failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stores")
		return
	}
	defer rows.Close()

	stores := []storePayload{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			h.Logger.Error("stores scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stores")
			return
		}
		stores = append(stores, s)
	}
	response.Success(w, stores)
}

func (h *Handler) StoreCreate(w http.ResponseWriter, r *http.Request) {
	var body storeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	store, err := scanStore(h.DB.QueryRow(r.Context(), `
        insert into stores (code, name, address, phone, is_active)
        values ($1, $2, $3, $4, $5)
        returning id, code, name, address, phone, is_active, created_at
    `, strings.ToUpper(strings.TrimSpace(body.Code)), strings.TrimSpace(body.Name),
		textPtr(body.Address), textPtr(body.Phone), active))
	if err != nil {
		if isUniqueViolation(err) {
			response.Error(w, http.StatusConflict, "DUPLICATE", "Store code already exists")
			return
		}
		h.Logger.Error("store create failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create store")
		return
	}
	response.Created(w, store)
}

func (h *Handler) StoreGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid store id")
		return
	}

	store, err := scanStore(h.DB.QueryRow(r.Context(), `
        select id, code, name, address, phone, is_active, created_at
        from stores where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Store not found")
		return
	}
	if err != nil {
		h.Logger.Error("store get failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch store")
		return
	}
	response.Success(w, store)
}

func (h *Handler) StoreUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid store id")
		return
	}

	var body storeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	store, err := scanStore(h.DB.QueryRow(r.Context(), `
        update stores
        set code = $2, name = $3, address = $4, phone = $5, is_active = $6
        where id = $1
        returning id, code, name, address, phone, is_active, created_at
    `, id, strings.ToUpper(strings.TrimSpace(body.Code)), strings.TrimSpace(body.Name),
		textPtr(body.Address), textPtr(body.Phone), active))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Store not found")
		return
	}
	if err != nil {
		if isUniqueViolation(err) {
			response.Error(w, http.StatusConflict, "DUPLICATE", "Store code already exists")
			return
		}
		h.Logger.Error("store update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update store")
		return
	}
	response.Success(w, store)
}

func (h *Handler) StoreDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid store id")
		return
	}

	tag, err := h.DB.Exec(r.Context(), `delete from stores where id = $1`, id)
	if err != nil {
		h.Logger.Error("store delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete store")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Store not found")
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
