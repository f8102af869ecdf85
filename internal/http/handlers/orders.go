package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"restropos-services/internal/orderstore"
	"restropos-services/internal/queue"
	"restropos-services/internal/report"
	"restropos-services/internal/utils"
	"restropos-services/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type orderCreateRequest struct {
	StoreID        int64            `json:"storeId"`
	Customer       report.Customer  `json:"customer"`
	Items          []orderItemInput `json:"items"`
	DiscountAmount float64          `json:"discountAmount"`
	TaxRate        float64          `json:"taxRate"`
	PaymentType    string           `json:"paymentType"`
}

type orderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func validPaymentType(value string) bool {
	switch report.PaymentType(value) {
	case report.PaymentCash, report.PaymentCard, report.PaymentUPI:
		return true
	}
	return false
}

// orderTotals applies the chain's pricing rule: tax is charged on the
// discounted subtotal and every monetary field rounds to two decimals. The
// returned discount is the one the order must store — clamped to the
// subtotal, so total = (subtotal - discount) * (1 + taxRate) holds on the
// persisted row.
func orderTotals(subtotal, requestedDiscount, taxRate float64) (discount, taxAmount, total float64) {
	discount = utils.Round2(requestedDiscount)
	if discount > subtotal {
		discount = subtotal
	}
	taxable := subtotal - discount
	taxAmount = utils.Round2(taxable * taxRate)
	total = utils.Round2(taxable * (1 + taxRate))
	return discount, taxAmount, total
}

func (h *Handler) OrderCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if len(body.Items) == 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order must have at least one item")
		return
	}
	if !validPaymentType(body.PaymentType) {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Payment type must be cash, card or upi")
		return
	}
	if body.DiscountAmount < 0 || body.TaxRate < 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Discount and tax rate must be non-negative")
		return
	}

	storeCode, storeName, err := h.lookupStore(ctx, body.StoreID)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Store not found")
		return
	}
	if err != nil {
		h.Logger.Error("order create store lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	items, subtotal, err := h.buildOrderItems(ctx, body.Items)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	discount, taxAmount, total := orderTotals(subtotal, body.DiscountAmount, body.TaxRate)
	now := time.Now().In(h.location())

	order := report.Order{
		Number:         orderstore.NewOrderNumber(storeCode, now),
		Customer:       body.Customer,
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxRate:        body.TaxRate,
		TaxAmount:      taxAmount,
		Total:          total,
		PaymentType:    report.PaymentType(body.PaymentType),
		Status:         report.StatusPending,
		Outlet:         storeName,
		PlacedAt:       now,
	}

	if err := h.Orders.Insert(ctx, order); err != nil {
		h.Logger.Error("order insert failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	h.Cache.invalidate()
	h.publishOrderEvent(r, queue.RouteOrderCreated, order)
	response.Created(w, order)
}

func (h *Handler) lookupStore(ctx context.Context, storeID int64) (code, name string, err error) {
	err = h.DB.QueryRow(ctx, `
        select code, name from stores where id = $1 and is_active = true
    `, storeID).Scan(&code, &name)
	return code, name, err
}

// buildOrderItems resolves product references against the catalogue and
// prices each line at the current menu price.
func (h *Handler) buildOrderItems(ctx context.Context, inputs []orderItemInput) ([]report.Item, float64, error) {
	ids := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, errors.New("item quantity must be positive")
		}
		ids = append(ids, in.ProductID)
	}

	rows, err := h.DB.Query(ctx, `
        select id, name, price from products where id = any($1) and is_active = true
    `, ids)
	if err != nil {
		return nil, 0, errors.New("failed to resolve products")
	}
	defer rows.Close()

	type productRow struct {
		name  string
		price float64
	}
	products := make(map[int64]productRow)
	for rows.Next() {
		var (
			id    int64
			name  string
			price pgtype.Numeric
		)
		if err := rows.Scan(&id, &name, &price); err != nil {
			return nil, 0, errors.New("failed to resolve products")
		}
		products[id] = productRow{name: name, price: utils.NumericToFloat64(price)}
	}

	items := make([]report.Item, 0, len(inputs))
	subtotal := 0.0
	for _, in := range inputs {
		product, ok := products[in.ProductID]
		if !ok {
			return nil, 0, errors.New("product not found or inactive")
		}
		price := utils.Round2(product.price)
		items = append(items, report.Item{
			ProductID: in.ProductID,
			Name:      product.name,
			Price:     price,
			Quantity:  in.Quantity,
		})
		subtotal = utils.Round2(subtotal + price*float64(in.Quantity))
	}
	return items, subtotal, nil
}

// OrdersList returns the order history narrowed by the standard dashboard
// filters, newest first.
func (h *Handler) OrdersList(w http.ResponseWriter, r *http.Request) {
	all, err := h.loadOrders(r)
	if err != nil {
		h.Logger.Error("orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
		return
	}

	criteria := h.reportCriteria(r)
	filtered := report.Filter(all, criteria)

	// Most recent first for the listing view.
	out := make([]report.Order, len(filtered))
	for i, o := range filtered {
		out[len(filtered)-1-i] = o
	}

	response.Success(w, map[string]any{
		"orders": out,
		"filters": map[string]any{
			"month":  criteria.Month,
			"store":  criteria.Store,
			"week":   criteria.Week,
			"search": criteria.Search,
		},
	})
}

func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")
	order, err := h.Orders.ByNumber(r.Context(), number)
	if errors.Is(err, orderstore.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		h.Logger.Error("order detail failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch order")
		return
	}
	order.PlacedAt = order.PlacedAt.In(h.location())
	response.Success(w, order)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// validStatusTransition enforces the order lifecycle: pending orders can
// complete or cancel, terminal states never move.
func validStatusTransition(from, to report.OrderStatus) bool {
	if from != report.StatusPending {
		return false
	}
	return to == report.StatusCompleted || to == report.StatusCancelled
}

func (h *Handler) OrderStatusPatch(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	var body orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	status := report.OrderStatus(strings.ToLower(strings.TrimSpace(body.Status)))

	order, err := h.Orders.ByNumber(r.Context(), number)
	if errors.Is(err, orderstore.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		h.Logger.Error("order status lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	if !validStatusTransition(order.Status, status) {
		response.Error(w, http.StatusBadRequest, "INVALID_TRANSITION",
			"Only pending orders can be completed or cancelled")
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), number, status); err != nil {
		h.Logger.Error("order status update failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	order.Status = status
	h.Cache.invalidate()
	h.publishOrderEvent(r, queue.RouteOrderStatusUpdated, order)
	response.Success(w, order)
}

func (h *Handler) OrderDelete(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")
	err := h.Orders.Delete(r.Context(), number)
	if errors.Is(err, orderstore.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		h.Logger.Error("order delete failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete order")
		return
	}
	h.Cache.invalidate()
	response.Success(w, map[string]any{"deleted": number})
}
