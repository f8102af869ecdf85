package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restropos-services/internal/orderstore"
	"restropos-services/internal/receipt"
	"restropos-services/internal/report"
	"restropos-services/internal/storage"
)

// Routing keys published on the events exchange.
const (
	RouteOrderCreated       = "order.created"
	RouteOrderStatusUpdated = "order.status.updated"
)

// OrderEvent is the wire payload for order lifecycle events.
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderNumber string    `json:"orderNumber"`
	Outlet      string    `json:"outlet"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ArchiveCompletedReceipt consumes an order event and, when it marks an
// order completed, renders the receipt PDF and uploads it to the archive.
// Other events are acknowledged without work. A nil archive (object store
// not configured) skips uploads entirely.
func ArchiveCompletedReceipt(ctx context.Context, store *orderstore.Store, archive *storage.ReceiptArchive, body []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// Malformed payloads can never succeed on retry.
		return nil
	}
	if archive == nil {
		return nil
	}
	if event.Event != RouteOrderStatusUpdated || event.Status != string(report.StatusCompleted) {
		return nil
	}

	order, err := store.ByNumber(ctx, event.OrderNumber)
	if errors.Is(err, orderstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load order %s: %w", event.OrderNumber, err)
	}

	pdf, err := receipt.Render(receipt.Build(order, "", "", ""))
	if err != nil {
		return fmt.Errorf("render receipt %s: %w", event.OrderNumber, err)
	}

	if _, err := archive.Put(ctx, receipt.Filename(order.Number), pdf.Bytes()); err != nil {
		return fmt.Errorf("archive receipt %s: %w", event.OrderNumber, err)
	}
	return nil
}
