package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"restropos-services/internal/orderstore"
	"restropos-services/internal/receipt"
	"restropos-services/internal/report"
	"restropos-services/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// OrderReceipt streams the printable PDF receipt for an order.
func (h *Handler) OrderReceipt(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	order, err := h.Orders.ByNumber(r.Context(), number)
	if errors.Is(err, orderstore.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		h.Logger.Error("receipt order lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build receipt")
		return
	}
	order.PlacedAt = order.PlacedAt.In(h.location())

	name, address, phone := h.storeContact(r.Context(), order.Outlet)
	pdf, err := receipt.Render(receipt.Build(order, name, address, phone))
	if err != nil {
		h.Logger.Error("receipt render failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", receipt.Filename(order.Number)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf.Bytes())
}

// storeContact resolves the receipt header fields from the stores table.
// Outlet strings from order entry are inconsistently formatted, so matching
// happens on the normalized name. Missing stores leave the fields blank and
// the receipt falls back to the raw outlet string.
func (h *Handler) storeContact(ctx context.Context, outlet string) (name, address, phone string) {
	err := h.DB.QueryRow(ctx, `
        select name, coalesce(address, ''), coalesce(phone, '')
        from stores
        where lower(regexp_replace(trim(name), '\s+', ' ', 'g')) = $1
        limit 1
    `, report.NormalizeOutlet(outlet)).Scan(&name, &address, &phone)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.Logger.Warn("store contact lookup failed", zapError(err))
	}
	return name, address, phone
}
