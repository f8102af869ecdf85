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

type productPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type productRequest struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
	Price    float64 `json:"price"`
	IsActive *bool   `json:"isActive"`
}

func (b productRequest) validate() string {
	if strings.TrimSpace(b.Name) == "" {
		return "Product name is required"
	}
	if b.Price <= 0 {
		return "Price must be positive"
	}
	return ""
}

func scanProduct(row pgx.Row) (productPayload, error) {
	var (
		p        productPayload
		category pgtype.Text
		price    pgtype.Numeric
	)
	err := row.Scan(&p.ID, &p.Name, &category, &price, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return productPayload{}, err
	}
	p.Category = textOrDefault(category, "")
	p.Price = utils.NumericToFloat64(price)
	return p, nil
}

func (h *Handler) ProductsList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
        select id, name, category, price, is_active, created_at
        from products order by category nulls last, name
    `)
	if err != nil {
		h.Logger.Error("products list failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}
	defer rows.Close()

	products := []productPayload{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			h.Logger.Error("products scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch products")
			return
		}
		products = append(products, p)
	}
	response.Success(w, products)
}

func (h *Handler) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var body productRequest
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

	product, err := scanProduct(h.DB.QueryRow(r.Context(), `
        insert into products (name, category, price, is_active)
        values ($1, $2, $3, $4)
        returning id, name, category, price, is_active, created_at
    `, strings.TrimSpace(body.Name), textPtr(body.Category), utils.Round2(body.Price), active))
	if err != nil {
		h.Logger.Error("product create failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create product")
		return
	}
	response.Created(w, product)
}

func (h *Handler) ProductGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	product, err := scanProduct(h.DB.QueryRow(r.Context(), `
        select id, name, category, price, is_active, created_at
        from products where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		return
	}
	if err != nil {
		h.Logger.Error("product get failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch product")
		return
	}
	response.Success(w, product)
}

func (h *Handler) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var body productRequest
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

	product, err := scanProduct(h.DB.QueryRow(r.Context(), `
        update products
        set name = $2, category = $3, price = $4, is_active = $5
        where id = $1
        returning id, name, category, price, is_active, created_at
    `, id, strings.TrimSpace(body.Name), textPtr(body.Category), utils.Round2(body.Price), active))
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		return
	}
	if err != nil {
		h.Logger.Error("product update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update product")
		return
	}
	response.Success(w, product)
}

func (h *Handler) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	tag, err := h.DB.Exec(r.Context(), `delete from products where id = $1`, id)
	if err != nil {
		h.Logger.Error("product delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
