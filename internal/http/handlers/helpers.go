package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restropos-services/internal/queue"
	"restropos-services/internal/report"
	"restropos-services/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func textOrDefault(value pgtype.Text, fallback string) string {
	if value.Valid {
		return value.String
	}
	return fallback
}

func textPtr(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: strings.TrimSpace(*value), Valid: true}
}

// publishOrderEvent fans an order lifecycle event out to the queue and the
// websocket hub. Both are best-effort: a dead broker must not fail the
// request that produced the event.
func (h *Handler) publishOrderEvent(r *http.Request, routingKey string, o report.Order) {
	event := queue.OrderEvent{
		Event:       routingKey,
		OrderNumber: o.Number,
		Outlet:      o.Outlet,
		Status:      string(o.Status),
		Total:       o.Total,
		OccurredAt:  time.Now(),
	}

	if h.Queue != nil {
		if err := h.Queue.PublishJSON(r.Context(), routingKey, event); err != nil {
			h.Logger.Warn("order event publish failed", zapError(err))
		}
	}
	if h.WS != nil {
		h.WS.Broadcast(event)
	}
}

// reportCriteria reads the shared dashboard query parameters. month defaults
// to the current month in the chain timezone; store defaults to the
// all-stores sentinel.
func (h *Handler) reportCriteria(r *http.Request) report.Criteria {
	query := r.URL.Query()

	month := strings.TrimSpace(query.Get("month"))
	if month == "" {
		month = utils.CurrentMonth(h.Config.Timezone)
	}

	store := strings.TrimSpace(query.Get("store"))
	if store == "" {
		store = report.AllStores
	}

	week := 0
	if value := query.Get("week"); value != "" && value != "all-weeks" {
		if parsed, err := strconv.Atoi(value); err == nil {
			week = parsed
		}
	}

	return report.Criteria{
		Month:  month,
		Store:  store,
		Week:   week,
		Search: strings.TrimSpace(query.Get("search")),
	}
}

func (h *Handler) location() *time.Location {
	return utils.LoadLocation(h.Config.Timezone)
}

// loadOrders materializes the full order history in the chain timezone so
// month and slot bucketing reflect local wall-clock time.
func (h *Handler) loadOrders(r *http.Request) ([]report.Order, error) {
	orders, err := h.Orders.All(r.Context())
	if err != nil {
		return nil, err
	}
	loc := h.location()
	for i := range orders {
		orders[i].PlacedAt = orders[i].PlacedAt.In(loc)
	}
	return orders, nil
}
