package handlers

import (
	"restropos-services/internal/config"
	"restropos-services/internal/orderstore"
	"restropos-services/internal/queue"
	"restropos-services/internal/storage"
	"restropos-services/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Handler struct {
	DB      *pgxpool.Pool
	Orders  *orderstore.Store
	Logger  *zap.Logger
	Config  config.Config
	Queue   *queue.Client
	WS      *ws.Server
	Archive *storage.ReceiptArchive
	Cache   *dashboardCache
}

// New wires a handler with a fresh dashboard cache.
func New(h Handler) *Handler {
	h.Cache = newDashboardCache()
	return &h
}

func zapError(err error) zap.Field {
	return zap.Error(err)
}
