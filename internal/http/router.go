package http

import (
	"net/http"

	"restropos-services/internal/config"
	"restropos-services/internal/http/handlers"
	"restropos-services/internal/middleware"
	"restropos-services/internal/ws"
	"restropos-services/pkg/response"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter assembles the HTTP surface: public health and login endpoints,
// the JWT-guarded admin API, and the order notifications websocket.
func NewRouter(cfg config.Config, logger *zap.Logger, h *handlers.Handler, hub *ws.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Telemetry(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth/login", h.Login)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWTSecret))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.OrdersList)
			r.Post("/", h.OrderCreate)
			r.Get("/{orderNumber}", h.OrderDetail)
			r.Patch("/{orderNumber}/status", h.OrderStatusPatch)
			r.Delete("/{orderNumber}", h.OrderDelete)
			r.Get("/{orderNumber}/receipt", h.OrderReceipt)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", h.DashboardMetrics)
			r.Get("/week-series", h.DashboardWeekSeries)
			r.Get("/customers", h.DashboardCustomers)
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.StoresList)
			r.Post("/", h.StoreCreate)
			r.Get("/{id}", h.StoreGet)
			r.Put("/{id}", h.StoreUpdate)
			r.Delete("/{id}", h.StoreDelete)
		})

		// Manager accounts are admin-only; the rest of the admin API is
		// open to any authenticated manager.
		r.Route("/managers", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", h.ManagersList)
			r.Post("/", h.ManagerCreate)
			r.Get("/{id}", h.ManagerGet)
			r.Put("/{id}", h.ManagerUpdate)
			r.Delete("/{id}", h.ManagerDelete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ProductsList)
			r.Post("/", h.ProductCreate)
			r.Get("/{id}", h.ProductGet)
			r.Put("/{id}", h.ProductUpdate)
			r.Delete("/{id}", h.ProductDelete)
		})

		r.Route("/raw-materials", func(r chi.Router) {
			r.Get("/", h.MaterialsList)
			r.Post("/", h.MaterialCreate)
			r.Get("/{id}", h.MaterialGet)
			r.Put("/{id}", h.MaterialUpdate)
			r.Delete("/{id}", h.MaterialDelete)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.VendorsList)
			r.Post("/", h.VendorCreate)
			r.Get("/{id}", h.VendorGet)
			r.Put("/{id}", h.VendorUpdate)
			r.Delete("/{id}", h.VendorDelete)
		})
	})

	r.Get("/ws/admin/orders", hub.AdminOrdersWS)

	return r
}
