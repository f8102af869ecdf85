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

type vendorPayload struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

type vendorRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

func scanVendor(row pgx.Row) (vendorPayload, error) {
	var (
		v       vendorPayload
		contact pgtype.Text
		phone   pgtype.Text
		email   pgtype.Text
		address pgtype.Text
	)
	err := row.Scan(&v.ID, &v.Name, &contact, &phone, &email, &address, &v.CreatedAt)
	if err != nil {
		return vendorPayload{}, err
	}
	v.ContactPerson = textOrDefault(contact, "")
	v.Phone = textOrDefault(phone, "")
	v.Email = textOrDefault(email, "")
	v.Address = textOrDefault(address, "")
	return v, nil
}

func (h *Handler) VendorsList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
        select id, name, contact_person, phone, email, address, created_at
        from vendors order by name
    `)
	if err != nil {
		h.Logger.Error("vendors list failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch vendors")
		return
	}
	defer rows.Close()

	vendors := []vendorPayload{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			h.Logger.Error("vendors scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch vendors")
			return
		}
		vendors = append(vendors, v)
	}
	response.Success(w, vendors)
}

func (h *Handler) VendorCreate(w http.ResponseWriter, r *http.Request) {
	var body vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Vendor name is required")
		return
	}

	vendor, err := scanVendor(h.DB.QueryRow(r.Context(), `
        insert into vendors (name, contact_person, phone, email, address)
        values ($1, $2, $3, $4, $5)
        returning id, name, contact_person, phone, email, address, created_at
    `, strings.TrimSpace(body.Name), textPtr(body.ContactPerson), textPtr(body.Phone),
		textPtr(body.Email), textPtr(body.Address)))
	if err != nil {
		h.Logger.Error("vendor create failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create vendor")
		return
	}
	response.Created(w, vendor)
}

func (h *Handler) VendorGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vendor id")
		return
	}

	vendor, err := scanVendor(h.DB.QueryRow(r.Context(), `
        select id, name, contact_person, phone, email, address, created_at
        from vendors where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
		return
	}
	if err != nil {
		h.Logger.Error("vendor get failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch vendor")
		return
	}
	response.Success(w, vendor)
}

func (h *Handler) VendorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vendor id")
		return
	}

	var body vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Vendor name is required")
		return
	}

	vendor, err := scanVendor(h.DB.QueryRow(r.Context(), `
        update vendors
        set name = $2, contact_person = $3, phone = $4, email = $5, address = $6
        where id = $1
        returning id, name, contact_person, phone, email, address, created_at
    `, id, strings.TrimSpace(body.Name), textPtr(body.ContactPerson), textPtr(body.Phone),
		textPtr(body.Email), textPtr(body.Address)))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
		return
	}
	if err != nil {
		h.Logger.Error("vendor update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update vendor")
		return
	}
	response.Success(w, vendor)
}

func (h *Handler) VendorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vendor id")
		return
	}

	tag, err := h.DB.Exec(r.Context(), `delete from vendors where id = $1`, id)
	if err != nil {
		h.Logger.Error("vendor delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete vendor")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
