package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"restropos-services/internal/utils"
	"restropos-services/pkg/response"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type materialPayload struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	StockQty     float64   `json:"stockQty"`
	ReorderLevel float64   `json:"reorderLevel"`
	VendorID     *int64    `json:"vendorId"`
	LowStock     bool      `json:"lowStock"`
	CreatedAt    time.Time `json:"createdAt"`
}

type materialRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	StockQty     float64 `json:"stockQty"`
	ReorderLevel float64 `json:"reorderLevel"`
	VendorID     *int64  `json:"vendorId"`
}

func (b materialRequest) validate() string {
	if strings.TrimSpace(b.Name) == "" {
		return "Material name is required"
	}
	if strings.TrimSpace(b.Unit) == "" {
		return "Unit is required"
	}
	if b.StockQty < 0 || b.ReorderLevel < 0 {
		return "Quantities must be non-negative"
	}
	return ""
}

func scanMaterial(row pgx.Row) (materialPayload, error) {
	var (
		m        materialPayload
		stock    pgtype.Numeric
		reorder  pgtype.Numeric
		vendorID pgtype.Int8
	)
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &stock, &reorder, &vendorID, &m.CreatedAt)
	if err != nil {
		return materialPayload{}, err
	}
	m.StockQty = utils.NumericToFloat64(stock)
	m.ReorderLevel = utils.NumericToFloat64(reorder)
	if vendorID.Valid {
		m.VendorID = &vendorID.Int64
	}
	m.LowStock = m.StockQty <= m.ReorderLevel
	return m, nil
}

// MaterialsList returns raw materials, optionally only those at or below
// their reorder level (?lowStock=true).
func (h *Handler) MaterialsList(w http.ResponseWriter, r *http.Request) {
	query := `
        select id, name, unit, stock_qty, reorder_level, vendor_id, created_at
        from raw_materials
    `
	if r.URL.Query().Get("lowStock") == "true" {
		query += ` where stock_qty <= reorder_level`
	}
	query += ` order by name`

	rows, err := h.DB.Query(r.Context(), query)
	if err != nil {
		h.Logger.Error("materials list failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch raw materials")
		return
	}
	defer rows.Close()

	materials := []materialPayload{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			h.Logger.Error("materials scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch raw materials")
			return
		}
		materials = append(materials, m)
	}
	response.Success(w, materials)
}

func (h *Handler) MaterialCreate(w http.ResponseWriter, r *http.Request) {
	var body materialRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	material, err := scanMaterial(h.DB.QueryRow(r.Context(), `
        insert into raw_materials (name, unit, stock_qty, reorder_level, vendor_id)
        values ($1, $2, $3, $4, $5)
        returning id, name, unit, stock_qty, reorder_level, vendor_id, created_at
    `, strings.TrimSpace(body.Name), strings.TrimSpace(body.Unit),
		body.StockQty, body.ReorderLevel, body.VendorID))
	if err != nil {
		h.Logger.Error("material create failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create raw material")
		return
	}
	response.Created(w, material)
}

func (h *Handler) MaterialGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid material id")
		return
	}

	material, err := scanMaterial(h.DB.QueryRow(r.Context(), `
        select id, name, unit, stock_qty, reorder_level, vendor_id, created_at
        from raw_materials where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Raw material not found")
		return
	}
	if err != nil {
		h.Logger.Error("material get failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch raw material")
		return
	}
	response.Success(w, material)
}

func (h *Handler) MaterialUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid material id")
		return
	}

	var body materialRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	material, err := scanMaterial(h.DB.QueryRow(r.Context(), `
        update raw_materials
        set name = $2, unit = $3, stock_qty = $4, reorder_level = $5, vendor_id = $6
        where id = $1
        returning id, name, unit, stock_qty, reorder_level, vendor_id, created_at
    `, id, strings.TrimSpace(body.Name), strings.TrimSpace(body.Unit),
		body.StockQty, body.ReorderLevel, body.VendorID))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Raw material not found")
		return
	}
	if err != nil {
		h.Logger.Error("material update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update raw material")
		return
	}
	response.Success(w, material)
}

func (h *Handler) MaterialDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid material id")
		return
	}

	tag, err := h.DB.Exec(r.Context(), `delete from raw_materials where id = $1`, id)
	if err != nil {
		h.Logger.Error("material delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete raw material")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Raw material not found")
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
